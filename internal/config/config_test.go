package config

import (
	"strings"
	"testing"
	"time"

	"github.com/totegamma/oairepo/internal/domain"
)

func TestParseDefaults(t *testing.T) {
	config, err := Parse(strings.NewReader(`
repository:
  baseURL: https://archive.example.org/oai
server:
  databaseDsn: sqlite:/tmp/oai.db
`))
	if err != nil {
		t.Fatal(err)
	}

	r := config.Repository
	if r.Name != "Repository" || r.NamespaceID != "archive.example.org" {
		t.Errorf("unexpected repository defaults %+v", r)
	}
	if r.ExposeMedia == nil || !*r.ExposeMedia {
		t.Errorf("exposeMedia must default to true")
	}
	if len(r.MetadataFormats) != 4 || r.SetFormat != "base" {
		t.Errorf("unexpected format defaults %+v", r)
	}
	if r.ListLimit != 50 || r.Domain().TokenTTL != 10*time.Minute {
		t.Errorf("unexpected paging defaults %+v", r)
	}

	s := config.Server
	if s.Listen != ":8000" || s.TokenStore != TokenStoreMemory || s.Sweep() != time.Minute {
		t.Errorf("unexpected server defaults %+v", s)
	}
}

func TestParseFull(t *testing.T) {
	config, err := Parse(strings.NewReader(`
repository:
  name: Digital Archive
  baseURL: https://archive.example.org/oai
  namespaceID: archive
  adminEmails: [a@example.org, b@example.org]
  exposeMedia: false
  appendIdentifier: https://archive.example.org/item/{id}
  metadataFormats: [mods]
  setFormat: none
  sets:
    - spec: maps
      name: Maps
      itemSets: [1, 2]
    - spec: maps:old
      name: Old maps
      description: Before 1900
      itemSets: [3]
  listLimit: 25
  tokenExpiration: 30
server:
  listen: 127.0.0.1:9000
  databaseDsn: host=db user=postgres
  tokenStore: redis
  redisAddr: redis:6379
  redisDB: 2
  sweepInterval: 5
`))
	if err != nil {
		t.Fatal(err)
	}

	repo := config.Repository.Domain()
	if repo.Name != "Digital Archive" || repo.NamespaceID != "archive" || len(repo.AdminEmails) != 2 {
		t.Errorf("unexpected repository %+v", repo)
	}
	if repo.ListLimit != 25 || repo.TokenTTL != 30*time.Minute {
		t.Errorf("unexpected paging %+v", repo)
	}

	params := config.Repository.FormatParams()
	if params.ExposeMedia {
		t.Errorf("exposeMedia false was ignored")
	}
	item := domain.Item{ID: 42}
	if got := params.ItemURL(item); got != "https://archive.example.org/item/42" {
		t.Errorf("ItemURL = %q", got)
	}
	if got := params.RecordID(item); got != "oai:archive:42" {
		t.Errorf("RecordID = %q", got)
	}
	if len(params.ElementPolicies) != 1 {
		t.Errorf("thesis policy not installed")
	}

	sets := config.Repository.StaticSets()
	if len(sets) != 2 || sets[1].Spec != "maps:old" || sets[1].ItemSets[0] != 3 {
		t.Errorf("unexpected sets %+v", sets)
	}

	if config.Server.TokenStore != TokenStoreRedis || config.Server.RedisDB != 2 || config.Server.Sweep() != 5*time.Second {
		t.Errorf("unexpected server %+v", config.Server)
	}
}

func TestParseWithoutItemURL(t *testing.T) {
	config, err := Parse(strings.NewReader(`
repository:
  baseURL: https://archive.example.org/oai
server:
  databaseDsn: sqlite:/tmp/oai.db
`))
	if err != nil {
		t.Fatal(err)
	}
	if config.Repository.FormatParams().ItemURL != nil {
		t.Errorf("no template means no item url")
	}
}

func TestParseInvalid(t *testing.T) {
	var tests = []string{
		"server:\n  databaseDsn: x\n",
		"repository:\n  baseURL: http://x.org/oai\n  setFormat: tree\nserver:\n  databaseDsn: x\n",
		"repository:\n  baseURL: http://x.org/oai\nserver:\n  databaseDsn: x\n  tokenStore: disk\n",
		"repository:\n  baseURL: http://x.org/oai\n",
		"repository: [\n",
	}
	for _, test := range tests {
		if _, err := Parse(strings.NewReader(test)); err == nil {
			t.Errorf("expected error for %q", test)
		}
	}
}
