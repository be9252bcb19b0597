package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/justsurfingit/internship-finder/internal/gateway"
	"github.com/justsurfingit/internship-finder/internal/models"
)

// SeedService loads YAML fixtures through the gateway.
type SeedService struct {
	Gateway gateway.Gateway
}

func NewSeedService(g gateway.Gateway) *SeedService {
	return &SeedService{Gateway: g}
}

type seedSection struct {
	key    string
	entity gateway.Entity
	new    func() any
}

// Sections are created in this order.
var seedSections = []seedSection{
	{"companies", gateway.EntityCompany, func() any { return &models.Company{} }},
	{"mentors", gateway.EntityMentor, func() any { return &models.Mentor{} }},
	{"success_stories", gateway.EntitySuccessStory, func() any { return &models.SuccessStory{} }},
	{"resources", gateway.EntityResource, func() any { return &models.Resource{} }},
	{"users", gateway.EntityUser, func() any { return &models.User{} }},
}

// SeedReport counts created records per entity.
type SeedReport map[gateway.Entity]int

func (s *SeedService) LoadFile(ctx context.Context, path string) (SeedReport, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return s.Load(ctx, f)
}

// Load reads a document with one list per section. Records go through JSON
// so the YAML keys are the same snake_case names the API uses.
func (s *SeedService) Load(ctx context.Context, r io.Reader) (SeedReport, error) {
	var doc map[string][]map[string]any
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode seed file: %w", err)
	}
	for key := range doc {
		if !knownSection(key) {
			return nil, fmt.Errorf("unknown seed section %q", key)
		}
	}

	report := SeedReport{}
	for _, sec := range seedSections {
		for i, raw := range doc[sec.key] {
			record := sec.new()
			b, err := json.Marshal(raw)
			if err != nil {
				return report, fmt.Errorf("%s[%d]: %w", sec.key, i, err)
			}
			if err := json.Unmarshal(b, record); err != nil {
				return report, fmt.Errorf("%s[%d]: %w", sec.key, i, err)
			}
			if u, ok := record.(*models.User); ok {
				// Not part of the JSON form; fixtures may set it for local logins.
				if tok, ok := raw["session_token"].(string); ok {
					u.SessionToken = tok
				}
			}
			if err := s.Gateway.Create(ctx, sec.entity, record); err != nil {
				return report, fmt.Errorf("create %s[%d]: %w", sec.key, i, err)
			}
			report[sec.entity]++
		}
		if n := report[sec.entity]; n > 0 {
			log.Printf("🌱 Seeded %d %s", n, sec.key)
		}
	}
	return report, nil
}

func knownSection(key string) bool {
	for _, sec := range seedSections {
		if sec.key == key {
			return true
		}
	}
	return false
}
