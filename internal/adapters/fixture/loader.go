// Package fixture reads inventory datasets from YAML documents.
//
// A document lists databases, each holding activities with their ordered
// exchanges, and impact assessment methods with characterization factors:
//
//	databases:
//	  - name: a
//	    activities:
//	      - code: "1"
//	        name: process 1
//	        unit: kg
//	        location: RU
//	        exchanges:
//	          - {type: production, amount: 1}
//	          - {input: "2", amount: 0.8, type: technosphere}
//	methods:
//	  - name: gwp
//	    factors:
//	      - {flow: bio/co2, factor: 1}
//
// Exchange inputs are "database/code" references; a bare code refers to the
// enclosing database and an omitted input to the activity itself.
package fixture

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"lcatrace/internal/domain"
)

// MaxFileSize is the largest document Load accepts (64MB)
const MaxFileSize = 64 << 20

type document struct {
	Databases []database `yaml:"databases"`
	Methods   []method   `yaml:"methods"`
}

type database struct {
	Name       string     `yaml:"name"`
	Activities []activity `yaml:"activities"`
}

type activity struct {
	Code       string     `yaml:"code"`
	Name       string     `yaml:"name"`
	Unit       string     `yaml:"unit"`
	Location   string     `yaml:"location"`
	Categories []string   `yaml:"categories"`
	Type       string     `yaml:"type"`
	Exchanges  []exchange `yaml:"exchanges"`
}

type exchange struct {
	Input  string  `yaml:"input"`
	Amount float64 `yaml:"amount"`
	Type   string  `yaml:"type"`
}

type method struct {
	Name    string   `yaml:"name"`
	Factors []factor `yaml:"factors"`
}

type factor struct {
	Flow   string  `yaml:"flow"`
	Factor float64 `yaml:"factor"`
}

// LoadFile reads a dataset from a YAML file
func LoadFile(path string) (*domain.Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open fixture: %w", err)
	}
	defer f.Close()

	dataset, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return dataset, nil
}

// Load reads a dataset from a YAML stream
func Load(r io.Reader) (*domain.Dataset, error) {
	data, err := io.ReadAll(io.LimitReader(r, MaxFileSize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read fixture: %w", err)
	}
	if len(data) > MaxFileSize {
		return nil, fmt.Errorf("fixture exceeds %d bytes", MaxFileSize)
	}

	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse fixture: %w", err)
	}
	return doc.dataset()
}

func (doc *document) dataset() (*domain.Dataset, error) {
	dataset := &domain.Dataset{Methods: make(map[domain.Method]map[domain.Key]float64)}
	seen := make(map[domain.Key]bool)

	for _, db := range doc.Databases {
		if strings.TrimSpace(db.Name) == "" {
			return nil, errors.New("database without a name")
		}
		if strings.Contains(db.Name, "/") {
			return nil, fmt.Errorf("database name %q must not contain '/'", db.Name)
		}

		for _, a := range db.Activities {
			data, err := a.toDomain(db.Name)
			if err != nil {
				return nil, err
			}
			if seen[data.Activity.Key] {
				return nil, fmt.Errorf("duplicate activity %s", data.Activity.Key)
			}
			seen[data.Activity.Key] = true
			dataset.Activities = append(dataset.Activities, data)
		}
	}

	for _, m := range doc.Methods {
		if strings.TrimSpace(m.Name) == "" {
			return nil, errors.New("method without a name")
		}
		name := domain.Method(m.Name)
		if _, ok := dataset.Methods[name]; ok {
			return nil, fmt.Errorf("duplicate method %q", m.Name)
		}

		factors := make(map[domain.Key]float64, len(m.Factors))
		for _, f := range m.Factors {
			flow, err := domain.ParseKey(f.Flow)
			if err != nil {
				return nil, fmt.Errorf("method %q: %w", m.Name, err)
			}
			factors[flow] += f.Factor
		}
		dataset.Methods[name] = factors
	}

	return dataset, nil
}

func (a activity) toDomain(dbName string) (domain.ActivityData, error) {
	if strings.TrimSpace(a.Code) == "" {
		return domain.ActivityData{}, fmt.Errorf("activity %q in database %s has no code", a.Name, dbName)
	}
	key := domain.Key{Database: dbName, Code: a.Code}

	activityType := domain.ActivityTypeProcess
	switch t := domain.ActivityType(a.Type); t {
	case "", domain.ActivityTypeProcess:
	case domain.ActivityTypeEmission, domain.ActivityTypeResource:
		activityType = t
	default:
		return domain.ActivityData{}, fmt.Errorf("activity %s: unknown type %q", key, a.Type)
	}

	data := domain.ActivityData{
		Activity: domain.Activity{
			Key:        key,
			Name:       a.Name,
			Unit:       a.Unit,
			Location:   a.Location,
			Categories: a.Categories,
			Type:       activityType,
		},
	}

	for i, e := range a.Exchanges {
		role, err := domain.ParseRole(e.Type)
		if err != nil {
			return domain.ActivityData{}, fmt.Errorf("activity %s, exchange %d: %w", key, i, err)
		}
		input, err := resolveInput(e.Input, key)
		if err != nil {
			return domain.ActivityData{}, fmt.Errorf("activity %s, exchange %d: %w", key, i, err)
		}
		data.Exchanges = append(data.Exchanges, domain.Exchange{
			Input:  input,
			Output: key,
			Amount: e.Amount,
			Role:   role,
		})
	}

	return data, nil
}

func resolveInput(ref string, self domain.Key) (domain.Key, error) {
	ref = strings.TrimSpace(ref)
	switch {
	case ref == "":
		return self, nil
	case !strings.Contains(ref, "/"):
		return domain.Key{Database: self.Database, Code: ref}, nil
	default:
		return domain.ParseKey(ref)
	}
}
