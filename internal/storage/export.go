package storage

import (
	"encoding/json"
	"io"

	"github.com/san-kum/dpend/internal/sim"
)

type ExportFrame struct {
	Frame  int        `json:"frame"`
	Time   float64    `json:"time"`
	Theta  [2]float64 `json:"theta"`
	Omega  [2]float64 `json:"omega"`
	Joint1 [2]float64 `json:"joint1"`
	Joint2 [2]float64 `json:"joint2"`
}

type ExportData struct {
	RunMetadata
	Data []ExportFrame `json:"data"`
}

// ExportJSON writes a run's metadata and frames as a single JSON document.
func ExportJSON(w io.Writer, meta *RunMetadata, frames []sim.Frame) error {
	data := ExportData{
		RunMetadata: *meta,
		Data:        make([]ExportFrame, len(frames)),
	}

	for i, f := range frames {
		data.Data[i] = ExportFrame{
			Frame:  f.Index,
			Time:   f.Time,
			Theta:  [2]float64{f.State.Arm1.Angle, f.State.Arm2.Angle},
			Omega:  [2]float64{f.State.Arm1.AngularVelocity, f.State.Arm2.AngularVelocity},
			Joint1: [2]float64{f.Joint1.X, f.Joint1.Y},
			Joint2: [2]float64{f.Joint2.X, f.Joint2.Y},
		}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}
