package storage

import (
	"encoding/json"
	"io"

	"github.com/san-kum/rigidsim/internal/dynamo"
)

type ExportData struct {
	ID      string             `json:"id"`
	Scene   string             `json:"scene"`
	Engine  string             `json:"engine"`
	Dt      float64            `json:"dt"`
	Steps   int                `json:"steps"`
	Bodies  []string           `json:"bodies"`
	Frames  []dynamo.Frame     `json:"frames"`
	Metrics map[string]float64 `json:"metrics"`
	Checks  map[string]bool    `json:"checks,omitempty"`
}

func ExportJSON(w io.Writer, meta *RunMetadata, frames []dynamo.Frame) error {
	data := ExportData{
		ID:      meta.ID,
		Scene:   meta.Scene,
		Engine:  meta.Engine,
		Dt:      meta.Dt,
		Steps:   len(frames),
		Bodies:  meta.Bodies,
		Frames:  frames,
		Metrics: meta.Metrics,
		Checks:  meta.Checks,
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}
