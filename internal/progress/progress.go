// Package progress accumulates answer history and per mode+stack tallies.
// A Progress value is read and written wholesale by its store.
package progress

import (
	"sort"
	"strings"
	"time"
)

// MaxHistory is the default number of answers kept in History.
const MaxHistory = 500

type AnswerRecord struct {
	Mode           string    `json:"mode"`
	Stack          string    `json:"stack"`
	TargetPosition int       `json:"target_position"`
	AnswerPosition int       `json:"answer_position"`
	Correct        bool      `json:"correct"`
	ElapsedSeconds float64   `json:"elapsed_seconds"`
	AnsweredAt     time.Time `json:"answered_at"`
}

func (a AnswerRecord) Key() string {
	return Key(a.Mode, a.Stack)
}

type Tally struct {
	Correct       int `json:"correct"`
	Incorrect     int `json:"incorrect"`
	CurrentStreak int `json:"current_streak"`
	BestStreak    int `json:"best_streak"`
}

func (t Tally) Total() int {
	return t.Correct + t.Incorrect
}

// Accuracy returns the percentage of correct answers, 0 when nothing was answered.
func (t Tally) Accuracy() float64 {
	if t.Total() == 0 {
		return 0
	}
	return float64(t.Correct) / float64(t.Total()) * 100
}

func (t *Tally) add(correct bool) {
	if correct {
		t.Correct++
		t.CurrentStreak++
		if t.CurrentStreak > t.BestStreak {
			t.BestStreak = t.CurrentStreak
		}
		return
	}
	t.Incorrect++
	t.CurrentStreak = 0
}

// Key identifies a tally by mode and stack.
func Key(mode, stack string) string {
	return mode + ":" + stack
}

func splitKey(key string) (mode, stack string) {
	mode, stack, _ = strings.Cut(key, ":")
	return mode, stack
}

type Progress struct {
	History []AnswerRecord   `json:"history"`
	Totals  map[string]Tally `json:"totals"`
	Limit   int              `json:"-"`
}

// New returns an empty Progress keeping at most limit answers; limit <= 0 uses MaxHistory.
func New(limit int) *Progress {
	p := &Progress{Totals: map[string]Tally{}}
	p.SetLimit(limit)
	return p
}

func (p *Progress) SetLimit(limit int) {
	if limit <= 0 {
		limit = MaxHistory
	}
	p.Limit = limit
	p.trim()
}

// Record appends the answer and updates its tally. Totals are never capped;
// history drops the oldest answers past the limit.
func (p *Progress) Record(a AnswerRecord) Tally {
	if p.Totals == nil {
		p.Totals = map[string]Tally{}
	}
	if p.Limit <= 0 {
		p.Limit = MaxHistory
	}
	p.History = append(p.History, a)
	p.trim()

	t := p.Totals[a.Key()]
	t.add(a.Correct)
	p.Totals[a.Key()] = t
	return t
}

func (p *Progress) trim() {
	if over := len(p.History) - p.Limit; over > 0 {
		p.History = append([]AnswerRecord(nil), p.History[over:]...)
	}
}

func (p *Progress) Tally(mode, stack string) Tally {
	return p.Totals[Key(mode, stack)]
}

// Recent returns up to limit answers, newest first.
func (p *Progress) Recent(limit int) []AnswerRecord {
	n := len(p.History)
	if limit <= 0 || limit > n {
		limit = n
	}
	out := make([]AnswerRecord, 0, limit)
	for i := n - 1; i >= n-limit; i-- {
		out = append(out, p.History[i])
	}
	return out
}

// Reset clears the tally and history for one mode+stack. Empty mode and
// stack clear everything; an empty mode or stack alone matches any value.
func (p *Progress) Reset(mode, stack string) {
	if mode == "" && stack == "" {
		p.History = nil
		p.Totals = map[string]Tally{}
		return
	}
	match := func(m, s string) bool {
		return (mode == "" || m == mode) && (stack == "" || s == stack)
	}
	for k := range p.Totals {
		if match(splitKey(k)) {
			delete(p.Totals, k)
		}
	}
	kept := p.History[:0:0]
	for _, a := range p.History {
		if !match(a.Mode, a.Stack) {
			kept = append(kept, a)
		}
	}
	p.History = kept
}

type Summary struct {
	Mode              string  `json:"mode"`
	Stack             string  `json:"stack"`
	Correct           int     `json:"correct"`
	Incorrect         int     `json:"incorrect"`
	Total             int     `json:"total"`
	Accuracy          float64 `json:"accuracy"`
	CurrentStreak     int     `json:"current_streak"`
	BestStreak        int     `json:"best_streak"`
	AvgElapsedSeconds float64 `json:"avg_elapsed_seconds"`
}

// Summary reports every tally sorted by mode then stack. Average elapsed
// time covers the retained history only.
func (p *Progress) Summary() []Summary {
	elapsed := map[string]float64{}
	timed := map[string]int{}
	for _, a := range p.History {
		if a.ElapsedSeconds > 0 {
			elapsed[a.Key()] += a.ElapsedSeconds
			timed[a.Key()]++
		}
	}

	out := make([]Summary, 0, len(p.Totals))
	for k, t := range p.Totals {
		mode, stack := splitKey(k)
		s := Summary{
			Mode:          mode,
			Stack:         stack,
			Correct:       t.Correct,
			Incorrect:     t.Incorrect,
			Total:         t.Total(),
			Accuracy:      t.Accuracy(),
			CurrentStreak: t.CurrentStreak,
			BestStreak:    t.BestStreak,
		}
		if n := timed[k]; n > 0 {
			s.AvgElapsedSeconds = elapsed[k] / float64(n)
		}
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Mode != out[j].Mode {
			return out[i].Mode < out[j].Mode
		}
		return out[i].Stack < out[j].Stack
	})
	return out
}
