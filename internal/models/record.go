package models

import (
	"math"
	"sort"
	"time"

	"github.com/desertthunder/comeback/internal/shared"
)

const (
	// ChecklistTotal is the fixed denominator of the completion score: three meals and six routine items.
	ChecklistTotal = 9
	// MaxWater caps the glasses counter.
	MaxWater = 20
)

// MealItems are the meal checklist entries in display order.
var MealItems = []string{"Breakfast", "Lunch", "Dinner"}

// RoutineItems are the daily routine entries in display order.
var RoutineItems = []string{
	"Wake 5am",
	"10-min silence",
	"15-min walk",
	"Work focus",
	"No drink today",
	"Message someone important",
}

// Checklist maps an item label to its done state.
type Checklist map[string]bool

// NewChecklist returns a checklist with every item unchecked.
func NewChecklist(items []string) Checklist {
	c := make(Checklist, len(items))
	for _, item := range items {
		c[item] = false
	}
	return c
}

// Done counts checked items.
func (c Checklist) Done() int {
	n := 0
	for _, v := range c {
		if v {
			n++
		}
	}
	return n
}

// Has reports whether label is an item of the checklist.
func (c Checklist) Has(label string) bool {
	_, ok := c[label]
	return ok
}

// Toggle flips label and returns a new checklist; unknown labels are left alone.
func (c Checklist) Toggle(label string) Checklist {
	out := c.Clone()
	if _, ok := out[label]; ok {
		out[label] = !out[label]
	}
	return out
}

// Clone copies the checklist.
func (c Checklist) Clone() Checklist {
	out := make(Checklist, len(c))
	for k, v := range c {
		out[k] = v
	}
	return out
}

// Merge fills items missing from c with false, keeping stored values.
func (c Checklist) Merge(items []string) Checklist {
	out := NewChecklist(items)
	for k, v := range c {
		out[k] = v
	}
	return out
}

// Keys returns the labels in the order of items, followed by any extra labels sorted.
func (c Checklist) Keys(items []string) []string {
	keys := make([]string, 0, len(c))
	seen := make(map[string]bool, len(items))
	for _, item := range items {
		if c.Has(item) {
			keys = append(keys, item)
			seen[item] = true
		}
	}
	var extra []string
	for k := range c {
		if !seen[k] {
			extra = append(extra, k)
		}
	}
	sort.Strings(extra)
	return append(keys, extra...)
}

// DailyRecord is the tracker state for one calendar day.
type DailyRecord struct {
	Day     string    `json:"day"`
	Mood    Mood      `json:"mood"`
	Water   int       `json:"water"`
	Meals   Checklist `json:"meals"`
	Routine Checklist `json:"routine"`
}

// NewDailyRecord returns the defaults for day: calm mood, no water, nothing checked.
func NewDailyRecord(day time.Time) *DailyRecord {
	return &DailyRecord{
		Day:     shared.DayKey(day),
		Mood:    MoodCalm,
		Water:   0,
		Meals:   NewChecklist(MealItems),
		Routine: NewChecklist(RoutineItems),
	}
}

// Clone returns a deep copy of r.
func (r *DailyRecord) Clone() *DailyRecord {
	return &DailyRecord{
		Day:     r.Day,
		Mood:    r.Mood,
		Water:   r.Water,
		Meals:   r.Meals.Clone(),
		Routine: r.Routine.Clone(),
	}
}

// Completion is the day's score in percent.
func (r *DailyRecord) Completion() int {
	return Completion(r.Meals, r.Routine)
}

// Completion returns round(100 * checked / [ChecklistTotal]), clamped to [0, 100].
func Completion(meals, routine Checklist) int {
	done := meals.Done() + routine.Done()
	pct := int(math.Round(100 * float64(done) / ChecklistTotal))
	return min(max(pct, 0), 100)
}

// ClampWater bounds a glasses count to [0, MaxWater].
func ClampWater(n int) int {
	return min(max(n, 0), MaxWater)
}

// Average returns round(sum / len) of values, or 0 for none.
func Average(values []int) int {
	if len(values) == 0 {
		return 0
	}
	sum := 0
	for _, v := range values {
		sum += v
	}
	return int(math.Round(float64(sum) / float64(len(values))))
}
