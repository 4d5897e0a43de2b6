package texture

import (
	"context"
	"iter"
)

// Percent reports progress after the file at index i of total has been handled.
// Float truncation is intentional: 29 of 100 reports 28.
func Percent(i, total int) int {
	if total <= 0 {
		return 0
	}
	return int(float64(i+1) / float64(total) * 100)
}

// Run converts every file of the job in order and yields its events lazily.
// A failing file yields an error event followed by its progress event; the
// batch always continues. A done event closes the sequence unless the consumer
// stops early or ctx is cancelled before the next file starts.
func (c *Converter) Run(ctx context.Context, job Job) iter.Seq[Event] {
	return func(yield func(Event) bool) {
		total := len(job.Files)

		for i, file := range job.Files {
			if ctx.Err() != nil {
				return
			}

			output, err := c.ConvertFile(ctx, file, job.OutputDir, job.Format)
			if err != nil {
				if !yield(Event{Kind: EventError, Index: i, Total: total, Source: file, Err: err}) {
					return
				}
			}

			if !yield(Event{Kind: EventProgress, Index: i, Total: total, Percent: Percent(i, total), Source: file, Output: output}) {
				return
			}
		}

		yield(Event{Kind: EventDone, Index: total, Total: total, Percent: 100})
	}
}
