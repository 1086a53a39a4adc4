package model

import (
	"encoding/json"
	"fmt"
	"os"
)

// Save writes the document to the named file as JSON.
func Save(fileName string, doc *Document) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("error marshalling document: %w", err)
	}
	if err := os.WriteFile(fileName, data, 0644); err != nil { // skipcq: GSC-G302
		return fmt.Errorf("error writing document to file: %w", err)
	}
	return nil
}

// Load reads a document back from the named file.
func Load(fileName string) (*Document, error) {
	data, err := os.ReadFile(fileName)
	if err != nil {
		return nil, fmt.Errorf("error reading file: %w", err)
	}
	doc := NewDocument()
	if err := json.Unmarshal(data, doc); err != nil {
		return nil, fmt.Errorf("error unmarshalling document: %w", err)
	}
	return doc, nil
}
