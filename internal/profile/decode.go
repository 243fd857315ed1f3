package profile

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// Document is a record as handed over by a document store.
type Document = map[string]any

// DecodeJobs converts raw documents into jobs. Loosely typed values (numbers
// for salary, a single string for requirements) are coerced.
func DecodeJobs(docs []Document) (*Jobs, error) {
	jobs := &Jobs{Items: make([]*Job, 0, len(docs))}
	for i, doc := range docs {
		job := &Job{}
		if err := decode(doc, job); err != nil {
			return nil, fmt.Errorf("decoding job #%d: %w", i, err)
		}
		job.ID = documentID(doc, job.ID)
		jobs.Items = append(jobs.Items, job)
	}
	return jobs, nil
}

// DecodeCandidates converts raw documents into candidates. Experience stored
// as text is parsed; an empty value means zero years.
func DecodeCandidates(docs []Document) (*Candidates, error) {
	candidates := &Candidates{Items: make([]*Candidate, 0, len(docs))}
	for i, doc := range docs {
		candidate := &Candidate{}
		if err := decode(doc, candidate); err != nil {
			return nil, fmt.Errorf("decoding candidate #%d: %w", i, err)
		}
		candidate.ID = documentID(doc, candidate.ID)
		candidates.Items = append(candidates.Items, candidate)
	}
	return candidates, nil
}

// LoadJobs reads a JSON or YAML file holding a list of job documents.
func LoadJobs(path string) (*Jobs, error) {
	docs, err := readDocuments(path)
	if err != nil {
		return nil, err
	}
	return DecodeJobs(docs)
}

// LoadCandidates reads a JSON or YAML file holding a list of candidate documents.
func LoadCandidates(path string) (*Candidates, error) {
	docs, err := readDocuments(path)
	if err != nil {
		return nil, err
	}
	return DecodeCandidates(docs)
}

func decode(doc Document, out any) error {
	cfg := &mapstructure.DecoderConfig{
		Metadata:         nil,
		Result:           out,
		TagName:          "json",
		WeaklyTypedInput: true,
	}
	decoder, err := mapstructure.NewDecoder(cfg)
	if err != nil {
		return err
	}
	return decoder.Decode(doc)
}

// documentID prefers the decoded id, then a store-assigned _id, and finally
// generates one so every record can be referenced from the CLI.
func documentID(doc Document, decoded string) string {
	if id := strings.TrimSpace(decoded); id != "" {
		return id
	}
	if raw, ok := doc["_id"]; ok && raw != nil {
		if id := strings.TrimSpace(fmt.Sprintf("%v", raw)); id != "" {
			return id
		}
	}
	return uuid.NewString()
}

func readDocuments(path string) ([]Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var docs []Document
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &docs); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
	default:
		if len(strings.TrimSpace(string(data))) == 0 {
			return []Document{}, nil
		}
		if err := json.Unmarshal(data, &docs); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
	}

	return docs, nil
}
