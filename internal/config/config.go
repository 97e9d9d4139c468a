package config

import (
	"fmt"
	"io"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-yaml/yaml"

	"github.com/totegamma/oairepo"
	"github.com/totegamma/oairepo/internal/domain"
	"github.com/totegamma/oairepo/internal/format"
	"github.com/totegamma/oairepo/internal/oaiset"
)

type Config struct {
	Repository Repository `yaml:"repository"`
	Server     Server     `yaml:"server"`
}

type Repository struct {
	Name        string   `yaml:"name"`
	BaseURL     string   `yaml:"baseURL"`
	NamespaceID string   `yaml:"namespaceID"`
	AdminEmails []string `yaml:"adminEmails"`
	ExposeMedia *bool    `yaml:"exposeMedia"`
	// AppendIdentifier is the item page URL with an {id} placeholder.
	AppendIdentifier string   `yaml:"appendIdentifier"`
	MetadataFormats  []string `yaml:"metadataFormats"`
	SetFormat        string   `yaml:"setFormat"` // base, none
	Sets             []Set    `yaml:"sets"`
	ListLimit        int      `yaml:"listLimit"`
	TokenExpiration  int      `yaml:"tokenExpiration"` // minutes
}

type Set struct {
	Spec        string  `yaml:"spec"`
	Name        string  `yaml:"name"`
	Description string  `yaml:"description"`
	ItemSets    []int64 `yaml:"itemSets"`
}

type Server struct {
	Listen        string `yaml:"listen"`
	DatabaseDsn   string `yaml:"databaseDsn"`
	TokenStore    string `yaml:"tokenStore"` // memory, redis, memcached, database
	RedisAddr     string `yaml:"redisAddr"`
	RedisPassword string `yaml:"redisPassword"`
	RedisDB       int    `yaml:"redisDB"`
	MemcachedAddr string `yaml:"memcachedAddr"`
	SweepInterval int    `yaml:"sweepInterval"` // seconds
	EnableTrace   bool   `yaml:"enableTrace"`
	TraceEndpoint string `yaml:"traceEndpoint"`
}

const (
	TokenStoreMemory    = "memory"
	TokenStoreRedis     = "redis"
	TokenStoreMemcached = "memcached"
	TokenStoreDatabase  = "database"
)

func Load(path string) (Config, error) {

	file, err := os.Open(path)
	if err != nil {
		return Config{}, err
	}
	defer file.Close()

	return Parse(file)
}

func Parse(r io.Reader) (Config, error) {
	var config Config
	err := yaml.NewDecoder(r).Decode(&config)
	if err != nil {
		return Config{}, err
	}

	config.applyDefaults()

	if err := config.validate(); err != nil {
		return Config{}, err
	}

	return config, nil
}

func (c *Config) applyDefaults() {
	r := &c.Repository
	if r.Name == "" {
		r.Name = "Repository"
	}
	if r.NamespaceID == "" {
		if u, err := url.Parse(r.BaseURL); err == nil {
			r.NamespaceID = u.Hostname()
		}
	}
	if r.ExposeMedia == nil {
		expose := true
		r.ExposeMedia = &expose
	}
	if len(r.MetadataFormats) == 0 {
		r.MetadataFormats = format.Prefixes
	}
	if r.SetFormat == "" {
		r.SetFormat = oaiset.FormatBase
	}
	if r.ListLimit <= 0 {
		r.ListLimit = 50
	}
	if r.TokenExpiration <= 0 {
		r.TokenExpiration = 10
	}

	s := &c.Server
	if s.Listen == "" {
		s.Listen = ":8000"
	}
	if s.TokenStore == "" {
		s.TokenStore = TokenStoreMemory
	}
	if s.SweepInterval <= 0 {
		s.SweepInterval = 60
	}
}

func (c Config) validate() error {
	if c.Repository.BaseURL == "" {
		return fmt.Errorf("repository.baseURL is required")
	}
	if c.Repository.NamespaceID == "" {
		return fmt.Errorf("repository.namespaceID could not be derived from %q", c.Repository.BaseURL)
	}
	switch c.Repository.SetFormat {
	case oaiset.FormatBase, oaiset.FormatNone:
	default:
		return fmt.Errorf("unknown repository.setFormat %q", c.Repository.SetFormat)
	}
	switch c.Server.TokenStore {
	case TokenStoreMemory, TokenStoreRedis, TokenStoreMemcached, TokenStoreDatabase:
	default:
		return fmt.Errorf("unknown server.tokenStore %q", c.Server.TokenStore)
	}
	if c.Server.DatabaseDsn == "" {
		return fmt.Errorf("server.databaseDsn is required")
	}
	return nil
}

// Domain is the repository description handed to the dispatcher.
func (r Repository) Domain() domain.Repository {
	return domain.Repository{
		Name:        r.Name,
		BaseURL:     r.BaseURL,
		NamespaceID: r.NamespaceID,
		AdminEmails: r.AdminEmails,
		ListLimit:   r.ListLimit,
		TokenTTL:    time.Duration(r.TokenExpiration) * time.Minute,
	}
}

// FormatParams are shared by every enabled metadata format.
func (r Repository) FormatParams() format.Params {
	p := format.Params{
		ExposeMedia: r.ExposeMedia == nil || *r.ExposeMedia,
		RecordID: func(item domain.Item) string {
			return oairepo.ComposeOAIIdentifier(r.NamespaceID, item.ID)
		},
		ElementPolicies: []format.ElementPolicy{format.ThesisDescription},
	}
	if tmpl := r.AppendIdentifier; tmpl != "" {
		p.ItemURL = func(item domain.Item) string {
			return strings.ReplaceAll(tmpl, "{id}", strconv.FormatInt(item.ID, 10))
		}
	}
	return p
}

// StaticSets are merged into the base set format.
func (r Repository) StaticSets() []domain.Set {
	sets := make([]domain.Set, 0, len(r.Sets))
	for _, s := range r.Sets {
		sets = append(sets, domain.Set{
			Spec:        s.Spec,
			Name:        s.Name,
			Description: s.Description,
			ItemSets:    s.ItemSets,
		})
	}
	return sets
}

func (s Server) Sweep() time.Duration {
	return time.Duration(s.SweepInterval) * time.Second
}
