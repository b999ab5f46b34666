package main

import (
	"fmt"
	"io"
	"runtime"
	"slices"
	"text/template"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

type Report struct {
	// Configuration
	Worlds  int
	Frames  int
	Checked bool

	// Results
	Results        []WorldResult
	TotalFrames    int64
	TotalRounds    int
	TotalTime      time.Duration
	UpdateTime     Stats
	GCPauseMetrics bool
	MemStatsStart  runtime.MemStats
	MemStatsEnd    runtime.MemStats
}

type Stats struct {
	Min     time.Duration
	Max     time.Duration
	Avg     time.Duration
	P99     time.Duration
	Samples []time.Duration
}

// Add folds world results into the report.
func (r *Report) Add(results ...WorldResult) {
	for _, res := range results {
		r.TotalFrames += int64(res.Frames)
		r.TotalRounds += res.Rounds
		r.UpdateTime.Samples = append(r.UpdateTime.Samples, res.Samples...)
		res.Samples = nil
		r.Results = append(r.Results, res)
	}
	r.UpdateTime.Finalize()
}

func (s *Stats) Finalize() {
	if len(s.Samples) == 0 {
		return
	}

	var total time.Duration
	s.Min = s.Samples[0]
	s.Max = s.Samples[0]

	for _, sample := range s.Samples {
		if sample < s.Min {
			s.Min = sample
		}
		if sample > s.Max {
			s.Max = sample
		}
		total += sample
	}
	s.Avg = total / time.Duration(len(s.Samples))

	sorted := slices.Clone(s.Samples)
	slices.Sort(sorted)
	s.P99 = sorted[len(sorted)*99/100]
}

func (r *Report) Generate(w io.Writer) error {
	const reportTemplate = `
# Dark Matter Simulation Report

## Configuration
- **Worlds:** {{.Worlds}}
- **Frames per World:** {{num .Frames}}
- **Determinism Check:** {{.Checked}}

## Performance Results
- **Total Frames:** {{num .TotalFrames}}
- **Total Rounds:** {{num .TotalRounds}}
- **Total Test Time:** {{.TotalTime}}
- **Frames per Second:** {{fps .TotalFrames .TotalTime}}
- **Update Time (Frame):**
  - **Avg:** {{.UpdateTime.Avg}}
  - **Min:** {{.UpdateTime.Min}}
  - **Max:** {{.UpdateTime.Max}}
  - **P99:** {{.UpdateTime.P99}}

## Worlds
| Seed | Rounds | Best Distance | Entities | Digest |
|---|---|---|---|---|
{{range .Results}}| {{.Seed}} | {{.Rounds}} | {{printf "%.1f" .Best}} | {{.Entities}} | {{printf "%016x" .Digest}} |
{{end}}
## Memory Usage
- Heap Alloc:     {{num .MemStatsStart.HeapAlloc}} (start) -> {{num .MemStatsEnd.HeapAlloc}} (end) -> delta: {{num (bsub .MemStatsEnd.HeapAlloc .MemStatsStart.HeapAlloc)}}
- Total Alloc:    {{num .MemStatsStart.TotalAlloc}} (start) -> {{num .MemStatsEnd.TotalAlloc}} (end) -> delta: {{num (bsub .MemStatsEnd.TotalAlloc .MemStatsStart.TotalAlloc)}}
- Sys Memory:     {{mb .MemStatsStart.Sys}} MB (start) -> {{mb .MemStatsEnd.Sys}} MB (end)
- Num GC:         {{.MemStatsStart.NumGC}} (start) -> {{.MemStatsEnd.NumGC}} (end) -> delta: {{usub .MemStatsEnd.NumGC .MemStatsStart.NumGC}}

{{if .GCPauseMetrics}}
## GC Pause Durations
- **Total GC Pause:** {{.MemStatsEnd.PauseTotalNs | ns}}
- **Num GC Cycles:** {{ usub .MemStatsEnd.NumGC .MemStatsStart.NumGC }}
{{end}}
`

	printer := message.NewPrinter(language.English)
	fm := template.FuncMap{
		"num": func(v any) string {
			return printer.Sprintf("%d", v)
		},
		"mb": func(v uint64) string {
			return printer.Sprintf("%.2f", float64(v)/1024/1024)
		},
		"fps": func(frames int64, d time.Duration) string {
			if d <= 0 {
				return "N/A"
			}
			return printer.Sprintf("%.0f", float64(frames)/d.Seconds())
		},
		"bsub": func(a, b uint64) int64 {
			return int64(a) - int64(b)
		},
		"usub": func(a, b uint32) uint32 {
			return a - b
		},
		"ns": func(ns uint64) string {
			return time.Duration(ns).String()
		},
	}

	tmpl, err := template.New("report").Funcs(fm).Parse(reportTemplate)
	if err != nil {
		return fmt.Errorf("parse report: %w", err)
	}

	return tmpl.Execute(w, r)
}
