package out

import (
	"encoding/json"
	"fmt"
	"time"

	"pomo/internal/modules/session/domain"
)

// statusDocument is the on-disk shape of status.json. Pointer fields detect
// absent keys.
type statusDocument struct {
	Type         *string    `json:"type"`
	Start        *time.Time `json:"start"`
	End          *time.Time `json:"end"`
	LastNotified *time.Time `json:"last_notified"`
	OneShot      bool       `json:"one_shot"`
}

func encodeRecord(record domain.Record) ([]byte, error) {
	kind := string(record.Type)
	start := record.Start.UTC()
	end := record.End.UTC()
	doc := statusDocument{Type: &kind, Start: &start, End: &end, OneShot: record.OneShot}
	if record.LastNotified != nil {
		last := record.LastNotified.UTC()
		doc.LastNotified = &last
	}
	payload, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal status: %w", err)
	}
	return payload, nil
}

func decodeRecord(payload []byte) (domain.Record, error) {
	doc := statusDocument{}
	if err := json.Unmarshal(payload, &doc); err != nil {
		return domain.Record{}, fmt.Errorf("decode status: %w", err)
	}
	if doc.Type == nil || doc.Start == nil || doc.End == nil {
		return domain.Record{}, fmt.Errorf("status is missing type, start or end")
	}
	record := domain.Record{
		Type:         domain.SessionType(*doc.Type),
		Start:        *doc.Start,
		End:          *doc.End,
		LastNotified: doc.LastNotified,
		OneShot:      doc.OneShot,
	}
	if err := record.Validate(); err != nil {
		return domain.Record{}, fmt.Errorf("validate status: %w", err)
	}
	return record, nil
}
