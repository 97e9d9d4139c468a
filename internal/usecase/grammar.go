package usecase

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/pkg/errors"

	"github.com/totegamma/oairepo"
	"github.com/totegamma/oairepo/internal/domain"
	"github.com/totegamma/oairepo/internal/format"
)

type verbGrammar struct {
	required  []string
	optional  []string
	resumable bool
}

var grammar = map[oairepo.Verb]verbGrammar{
	oairepo.VerbIdentify:            {},
	oairepo.VerbListMetadataFormats: {optional: []string{oairepo.ArgIdentifier}},
	oairepo.VerbListSets:            {resumable: true},
	oairepo.VerbGetRecord:           {required: []string{oairepo.ArgIdentifier, oairepo.ArgMetadataPrefix}},
	oairepo.VerbListIdentifiers: {
		required:  []string{oairepo.ArgMetadataPrefix},
		optional:  []string{oairepo.ArgFrom, oairepo.ArgUntil, oairepo.ArgSet},
		resumable: true,
	},
	oairepo.VerbListRecords: {
		required:  []string{oairepo.ArgMetadataPrefix},
		optional:  []string{oairepo.ArgFrom, oairepo.ArgUntil, oairepo.ArgSet},
		resumable: true,
	},
}

func (g verbGrammar) allows(arg string) bool {
	if arg == oairepo.ArgResumptionToken {
		return g.resumable
	}
	for _, a := range g.required {
		if a == arg {
			return true
		}
	}
	for _, a := range g.optional {
		if a == arg {
			return true
		}
	}
	return false
}

// request is a validated protocol request.
type request struct {
	verb           oairepo.Verb
	identifier     string
	itemID         int64
	metadataPrefix string
	format         format.Format
	set            string
	from           string
	until          string
	filter         domain.ListFilter
	// resumed is set when the request continues a list.
	resumed *domain.ResumptionToken
}

// parse validates params against the verb grammar. Protocol violations are
// added to b; the returned error is reserved for token store failures.
func (d *Dispatcher) parse(ctx context.Context, params url.Values, b *oairepo.Builder) (*request, error) {
	verbs := params[oairepo.ArgVerb]
	switch {
	case len(verbs) == 0 || verbs[0] == "":
		b.AddError(oairepo.BadVerb, "Missing verb argument.")
		return nil, nil
	case len(verbs) > 1:
		b.AddError(oairepo.BadVerb, "Verb argument is repeated.")
		return nil, nil
	case !oairepo.IsVerb(verbs[0]):
		b.AddError(oairepo.BadVerb, fmt.Sprintf("Illegal verb: %s.", verbs[0]))
		return nil, nil
	}

	req := &request{verb: oairepo.Verb(verbs[0])}
	g := grammar[req.verb]

	for _, arg := range sortedKeys(params) {
		if arg == oairepo.ArgVerb {
			continue
		}
		if !g.allows(arg) {
			b.AddError(oairepo.BadArgument, fmt.Sprintf("Illegal argument for %s: %s.", req.verb, arg))
			continue
		}
		if len(params[arg]) > 1 {
			b.AddError(oairepo.BadArgument, fmt.Sprintf("Argument is repeated: %s.", arg))
		}
	}

	if _, ok := params[oairepo.ArgResumptionToken]; ok && g.resumable {
		if len(params) > 2 {
			b.AddError(oairepo.BadArgument, "resumptionToken is an exclusive argument.")
		}
		if b.HasErrors() {
			return nil, nil
		}
		return d.resume(ctx, req, params.Get(oairepo.ArgResumptionToken), b)
	}

	for _, arg := range g.required {
		if params.Get(arg) == "" {
			b.AddError(oairepo.BadArgument, fmt.Sprintf("Missing required argument: %s.", arg))
		}
	}

	req.identifier = params.Get(oairepo.ArgIdentifier)
	req.metadataPrefix = params.Get(oairepo.ArgMetadataPrefix)
	req.set = params.Get(oairepo.ArgSet)
	req.from = params.Get(oairepo.ArgFrom)
	req.until = params.Get(oairepo.ArgUntil)

	d.bindArguments(req, b)
	if b.HasErrors() {
		return nil, nil
	}
	return req, nil
}

// resume restores a list request from its token.
func (d *Dispatcher) resume(ctx context.Context, req *request, id string, b *oairepo.Builder) (*request, error) {
	if id == "" {
		b.AddError(oairepo.BadResumptionToken, "The resumption token is empty.")
		return nil, nil
	}

	token, err := d.tokens.Resolve(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrTokenNotFound) || errors.Is(err, domain.ErrTokenExpired) {
			b.AddError(oairepo.BadResumptionToken, fmt.Sprintf("Invalid or expired resumption token: %s.", id))
			return nil, nil
		}
		return nil, errors.Wrap(err, "Dispatcher.resume: tokens.Resolve failed")
	}
	if token.Verb != string(req.verb) {
		b.AddError(oairepo.BadResumptionToken, fmt.Sprintf("Resumption token %s was not issued for %s.", id, req.verb))
		return nil, nil
	}

	req.resumed = &token
	req.metadataPrefix = token.MetadataPrefix
	req.set = token.Set
	req.from = token.From
	req.until = token.Until

	d.bindArguments(req, b)
	if b.HasErrors() {
		// the arguments stored in the token no longer fit this repository
		b.AddError(oairepo.BadResumptionToken, fmt.Sprintf("Resumption token %s is no longer valid.", id))
		return nil, nil
	}
	req.filter.After = token.After
	return req, nil
}

// bindArguments resolves dates, format, set and identifier of req.
func (d *Dispatcher) bindArguments(req *request, b *oairepo.Builder) {
	var fromTime, untilTime time.Time
	var fromGran, untilGran oairepo.Granularity
	var err error

	if req.from != "" {
		fromTime, fromGran, err = oairepo.ParseDatestamp(req.from)
		if err != nil {
			b.AddError(oairepo.BadArgument, fmt.Sprintf("Invalid date/time argument: %s.", req.from))
		} else {
			req.filter.From = &fromTime
		}
	}
	if req.until != "" {
		untilTime, untilGran, err = oairepo.ParseDatestamp(req.until)
		if err != nil {
			b.AddError(oairepo.BadArgument, fmt.Sprintf("Invalid date/time argument: %s.", req.until))
		} else {
			// until covers its whole second or day, so the bound is the
			// start of the next one
			bound := untilTime.Add(time.Second)
			if untilGran == oairepo.GranularityDay {
				bound = untilTime.AddDate(0, 0, 1)
			}
			req.filter.Until = &bound
		}
	}
	if req.filter.From != nil && req.filter.Until != nil {
		if fromGran != untilGran {
			b.AddError(oairepo.BadArgument, "Date arguments from and until must have the same granularity.")
		} else if untilTime.Before(fromTime) {
			b.AddError(oairepo.BadArgument, "Date argument until must not precede from.")
		}
	}

	if req.metadataPrefix != "" {
		f, ok := d.formats.Lookup(req.metadataPrefix)
		if !ok {
			b.AddError(oairepo.CannotDisseminateFormat, fmt.Sprintf("Format %s is not supported by this repository.", req.metadataPrefix))
		}
		req.format = f
	}

	if req.set != "" {
		if d.sets.Len() == 0 {
			b.AddError(oairepo.NoSetHierarchy, "This repository does not support sets.")
		} else if _, ok := d.sets.Lookup(req.set); !ok {
			b.AddError(oairepo.BadArgument, fmt.Sprintf("Set %s does not exist.", req.set))
		} else {
			req.filter.ItemSets = d.sets.ItemSets(req.set)
		}
	}

	if req.identifier != "" {
		id, err := oairepo.ParseOAIIdentifier(d.repo.NamespaceID, req.identifier)
		if err != nil {
			b.AddError(oairepo.IDDoesNotExist, fmt.Sprintf("Identifier %s does not exist.", req.identifier))
		}
		req.itemID = id
	}
}
