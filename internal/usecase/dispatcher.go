package usecase

import (
	"context"
	"log/slog"
	"net/url"
	"sort"
	"time"

	"github.com/pkg/errors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/totegamma/oairepo"
	"github.com/totegamma/oairepo/internal/domain"
	"github.com/totegamma/oairepo/internal/format"
	"github.com/totegamma/oairepo/internal/oaiset"
)

var tracer = otel.Tracer("oai")

const (
	defaultListLimit = 50
	defaultTokenTTL  = 10 * time.Minute
)

// Dispatcher is the OAI-PMH verb state machine. The registries are read-only
// after construction; the token store is the only shared mutable state.
type Dispatcher struct {
	repo    domain.Repository
	items   ItemRepository
	tokens  TokenStore
	formats *format.Registry
	sets    *oaiset.Registry
	now     func() time.Time
}

func NewDispatcher(
	repo domain.Repository,
	items ItemRepository,
	tokens TokenStore,
	formats *format.Registry,
	sets *oaiset.Registry,
) *Dispatcher {
	if repo.ListLimit <= 0 {
		repo.ListLimit = defaultListLimit
	}
	if repo.TokenTTL <= 0 {
		repo.TokenTTL = defaultTokenTTL
	}
	return &Dispatcher{
		repo:    repo,
		items:   items,
		tokens:  tokens,
		formats: formats,
		sets:    sets,
		now:     time.Now,
	}
}

// WithClock replaces the clock used for response dates and token expiry.
func (d *Dispatcher) WithClock(now func() time.Time) *Dispatcher {
	d.now = now
	return d
}

// Handle answers one protocol request. Protocol errors are encoded in the
// response; a returned error means the data source, token store or a format
// failed and no response must be sent.
func (d *Dispatcher) Handle(ctx context.Context, params url.Values) (*oairepo.Response, error) {
	ctx, span := tracer.Start(ctx, "Dispatcher.Handle")
	defer span.End()

	now := d.now().UTC()
	b := oairepo.NewBuilder(d.repo.BaseURL, now)
	b.Echo(params)

	req, err := d.parse(ctx, params, b)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	if req != nil {
		span.SetAttributes(attribute.String("Verb", string(req.verb)))
		switch req.verb {
		case oairepo.VerbIdentify:
			err = d.identify(ctx, b)
		case oairepo.VerbListMetadataFormats:
			err = d.listMetadataFormats(ctx, req, b)
		case oairepo.VerbListSets:
			err = d.listSets(ctx, req, b, now)
		case oairepo.VerbGetRecord:
			err = d.getRecord(ctx, req, b)
		case oairepo.VerbListIdentifiers, oairepo.VerbListRecords:
			err = d.listItems(ctx, req, b, now)
		}
		if err != nil {
			span.RecordError(err)
			return nil, err
		}
	}

	if b.HasErrors() {
		for _, e := range b.Errors() {
			slog.DebugContext(
				ctx, "protocol error",
				slog.String("code", string(e.Code)),
				slog.String("message", e.Message),
				slog.String("module", "oai"),
			)
		}
	}

	return b.Build(), nil
}

func (d *Dispatcher) identify(ctx context.Context, b *oairepo.Builder) error {
	earliest, err := d.items.Earliest(ctx)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			return errors.Wrap(err, "Dispatcher.identify: items.Earliest failed")
		}
		earliest = time.Unix(0, 0)
	}

	b.SetPayload(&oairepo.Identify{
		RepositoryName:    d.repo.Name,
		BaseURL:           d.repo.BaseURL,
		ProtocolVersion:   oairepo.ProtocolVersion,
		AdminEmails:       d.repo.AdminEmails,
		EarliestDatestamp: oairepo.FormatDatestamp(earliest),
		DeletedRecord:     "no",
		Granularity:       oairepo.GranularitySpec,
		Descriptions:      []oairepo.Description{oairepo.NewOAIIdentifierDescription(d.repo.NamespaceID)},
	})
	return nil
}

func (d *Dispatcher) listMetadataFormats(ctx context.Context, req *request, b *oairepo.Builder) error {
	if req.identifier != "" {
		if _, ok, err := d.findItem(ctx, req, b); err != nil || !ok {
			return err
		}
	}

	if d.formats.Len() == 0 {
		b.AddError(oairepo.NoMetadataFormats, "No metadata formats are available.")
		return nil
	}

	payload := &oairepo.ListMetadataFormats{}
	for _, f := range d.formats.All() {
		payload.Formats = append(payload.Formats, oairepo.MetadataFormat{
			Prefix:    f.Prefix(),
			Schema:    f.Schema(),
			Namespace: f.Namespace(),
		})
	}
	b.SetPayload(payload)
	return nil
}

func (d *Dispatcher) getRecord(ctx context.Context, req *request, b *oairepo.Builder) error {
	item, ok, err := d.findItem(ctx, req, b)
	if err != nil || !ok {
		return err
	}

	record, err := d.record(item, req.format)
	if err != nil {
		return err
	}
	b.SetPayload(&oairepo.GetRecord{Record: record})
	return nil
}

func (d *Dispatcher) listSets(ctx context.Context, req *request, b *oairepo.Builder, now time.Time) error {
	all := d.sets.All()
	if len(all) == 0 {
		b.AddError(oairepo.NoSetHierarchy, "This repository does not support sets.")
		return nil
	}

	cursor := 0
	if req.resumed != nil {
		cursor = req.resumed.Cursor
	}
	if cursor >= len(all) {
		b.AddError(oairepo.BadResumptionToken, "The resumption token points past the end of the list.")
		return nil
	}

	end := min(cursor+d.repo.ListLimit, len(all))
	payload := &oairepo.ListSets{}
	for _, s := range all[cursor:end] {
		payload.Sets = append(payload.Sets, oairepo.Set{
			Spec:        s.Spec,
			Name:        s.Name,
			Description: oairepo.NewSetDescription(s.Description),
		})
	}

	token, err := d.nextToken(ctx, req, now, cursor, end, len(all), end < len(all), 0)
	if err != nil {
		return err
	}
	payload.ResumptionToken = token
	b.SetPayload(payload)
	return nil
}

func (d *Dispatcher) listItems(ctx context.Context, req *request, b *oairepo.Builder, now time.Time) error {
	cursor, total := 0, 0
	if req.resumed != nil {
		cursor = req.resumed.Cursor
		total = req.resumed.CompleteListSize
	} else {
		count, err := d.items.Count(ctx, req.filter)
		if err != nil {
			return errors.Wrap(err, "Dispatcher.listItems: items.Count failed")
		}
		total = count
	}

	var items []domain.Item
	if total > 0 {
		var err error
		items, err = d.items.List(ctx, req.filter, d.repo.ListLimit+1)
		if err != nil {
			return errors.Wrap(err, "Dispatcher.listItems: items.List failed")
		}
	}
	if len(items) == 0 {
		b.AddError(oairepo.NoRecordsMatch, "The combination of the given values results in an empty list.")
		return nil
	}

	more := len(items) > d.repo.ListLimit
	if more {
		items = items[:d.repo.ListLimit]
	}
	end := cursor + len(items)
	if more && end >= total {
		// the repository grew since the list started
		total = end + 1
	}

	token, err := d.nextToken(ctx, req, now, cursor, end, total, more, items[len(items)-1].ID)
	if err != nil {
		return err
	}

	if req.verb == oairepo.VerbListIdentifiers {
		payload := &oairepo.ListIdentifiers{ResumptionToken: token}
		for _, item := range items {
			payload.Headers = append(payload.Headers, d.header(item))
		}
		b.SetPayload(payload)
		return nil
	}

	payload := &oairepo.ListRecords{ResumptionToken: token}
	for _, item := range items {
		record, err := d.record(item, req.format)
		if err != nil {
			return err
		}
		payload.Records = append(payload.Records, record)
	}
	b.SetPayload(payload)
	return nil
}

// nextToken mints the token for the page [cursor, end). The last page of a
// resumed list gets an empty token; a single page list gets none.
func (d *Dispatcher) nextToken(ctx context.Context, req *request, now time.Time, cursor, end, total int, more bool, after int64) (*oairepo.ResumptionToken, error) {
	if !more {
		if req.resumed == nil {
			return nil, nil
		}
		return &oairepo.ResumptionToken{CompleteListSize: total, Cursor: cursor}, nil
	}

	token := domain.ResumptionToken{
		Verb:             string(req.verb),
		MetadataPrefix:   req.metadataPrefix,
		Set:              req.set,
		From:             req.from,
		Until:            req.until,
		Cursor:           end,
		CompleteListSize: total,
		After:            after,
		IssuedAt:         now,
		ExpiresAt:        now.Add(d.repo.TokenTTL),
	}
	id, err := d.tokens.Create(ctx, token)
	if err != nil {
		return nil, errors.Wrap(err, "Dispatcher.nextToken: tokens.Create failed")
	}

	return &oairepo.ResumptionToken{
		ExpirationDate:   oairepo.FormatDatestamp(token.ExpiresAt),
		CompleteListSize: total,
		Cursor:           cursor,
		Value:            id,
	}, nil
}

// findItem loads the requested item, reporting idDoesNotExist when missing.
func (d *Dispatcher) findItem(ctx context.Context, req *request, b *oairepo.Builder) (domain.Item, bool, error) {
	item, err := d.items.Find(ctx, req.itemID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			b.AddError(oairepo.IDDoesNotExist, "Identifier "+req.identifier+" does not exist.")
			return domain.Item{}, false, nil
		}
		return domain.Item{}, false, errors.Wrap(err, "Dispatcher.findItem: items.Find failed")
	}
	return item, true, nil
}

func (d *Dispatcher) header(item domain.Item) oairepo.Header {
	return oairepo.Header{
		Identifier: oairepo.ComposeOAIIdentifier(d.repo.NamespaceID, item.ID),
		Datestamp:  oairepo.FormatDatestamp(item.Modified),
		SetSpecs:   d.sets.SpecsFor(item),
	}
}

func (d *Dispatcher) record(item domain.Item, f format.Format) (oairepo.Record, error) {
	metadata, err := f.Render(item)
	if err != nil {
		return oairepo.Record{}, errors.Wrapf(err, "Dispatcher.record: rendering item %d as %s failed", item.ID, f.Prefix())
	}
	return oairepo.Record{
		Header:   d.header(item),
		Metadata: &oairepo.Metadata{Inner: metadata},
	}, nil
}

func sortedKeys(params url.Values) []string {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
