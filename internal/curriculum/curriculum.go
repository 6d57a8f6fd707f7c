// Package curriculum provides the weekly Python lesson plan.
package curriculum

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"go.uber.org/zap"

	"github.com/abhisek/pylearn/internal/logging"
)

//go:embed curriculum.json
var embeddedCurriculum []byte

//go:embed schema.json
var schemaJSON []byte

const schemaURL = "schema://curriculum.json"

var (
	compileOnce sync.Once
	compiled    *jsonschema.Schema
	compileErr  error
)

type fileFormat struct {
	Weeks []struct {
		Name  string            `json:"name"`
		Topic string            `json:"topic"`
		Days  []json.RawMessage `json:"days"`
	} `json:"weeks"`
}

type week struct {
	info WeekInfo
	days map[int]DayInfo
}

// Curriculum is an immutable, validated lesson plan.
type Curriculum struct {
	weeks  []*week
	byName map[string]*week
}

var _ Provider = (*Curriculum)(nil)

var defaultCurriculum = mustParse(embeddedCurriculum)

// Default returns the built-in eight-week curriculum.
func Default() *Curriculum {
	return defaultCurriculum
}

func mustParse(data []byte) *Curriculum {
	c, err := Parse(data)
	if err != nil {
		panic(fmt.Sprintf("embedded curriculum: %v", err))
	}
	return c
}

// LoadFile reads and validates a curriculum file.
func LoadFile(path string) (*Curriculum, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read curriculum: %w", err)
	}
	return Parse(data)
}

// Parse validates data against the curriculum schema and builds a
// Curriculum. A week's MaxDay is its highest day number.
func Parse(data []byte) (*Curriculum, error) {
	if err := validate(data); err != nil {
		return nil, err
	}

	var f fileFormat
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("decode curriculum: %w", err)
	}

	c := &Curriculum{byName: make(map[string]*week, len(f.Weeks))}
	for _, fw := range f.Weeks {
		if _, dup := c.byName[fw.Name]; dup {
			return nil, fmt.Errorf("duplicate week %q", fw.Name)
		}
		w := &week{
			info: WeekInfo{Name: fw.Name, Topic: fw.Topic},
			days: make(map[int]DayInfo, len(fw.Days)),
		}
		for _, raw := range fw.Days {
			var num struct {
				Day int `json:"day"`
			}
			if err := json.Unmarshal(raw, &num); err != nil {
				return nil, fmt.Errorf("week %q: decode day: %w", fw.Name, err)
			}
			w.days[num.Day] = ParseDayInfo(raw, num.Day)
			if num.Day > w.info.MaxDay {
				w.info.MaxDay = num.Day
			}
		}
		c.weeks = append(c.weeks, w)
		c.byName[fw.Name] = w
	}
	return c, nil
}

// ParseDayInfo decodes a lesson object. Empty, null or malformed input
// yields FallbackDayInfo; a missing title is replaced by "Day N".
func ParseDayInfo(raw []byte, day int) DayInfo {
	if len(raw) == 0 || string(raw) == "null" {
		return FallbackDayInfo(day)
	}
	var info DayInfo
	if err := json.Unmarshal(raw, &info); err != nil {
		return FallbackDayInfo(day)
	}
	if info.Title == "" {
		info.Title = FallbackDayInfo(day).Title
	}
	return info
}

// Weeks returns the weeks in curriculum order.
func (c *Curriculum) Weeks() []WeekInfo {
	out := make([]WeekInfo, len(c.weeks))
	for i, w := range c.weeks {
		out[i] = w.info
	}
	return out
}

// Week looks up a week by name.
func (c *Curriculum) Week(name string) (WeekInfo, bool) {
	w, ok := c.byName[name]
	if !ok {
		return WeekInfo{}, false
	}
	return w.info, true
}

// MaxDay returns the number of lesson days in week, or DefaultMaxDay for
// an unknown week.
func (c *Curriculum) MaxDay(name string) int {
	w, ok := c.byName[name]
	if !ok || w.info.MaxDay == 0 {
		return DefaultMaxDay
	}
	return w.info.MaxDay
}

// DayInfo returns the lesson for week/day, or FallbackDayInfo.
func (c *Curriculum) DayInfo(name string, day int) DayInfo {
	w, ok := c.byName[name]
	if !ok {
		return FallbackDayInfo(day)
	}
	info, ok := w.days[day]
	if !ok {
		return FallbackDayInfo(day)
	}
	return info
}

// TotalDays sums MaxDay over all weeks.
func (c *Curriculum) TotalDays() int {
	total := 0
	for _, w := range c.weeks {
		total += w.info.MaxDay
	}
	return total
}

func validate(data []byte) error {
	compileOnce.Do(func() {
		var doc any
		if err := json.Unmarshal(schemaJSON, &doc); err != nil {
			compileErr = fmt.Errorf("parse schema: %w", err)
			return
		}
		c := jsonschema.NewCompiler()
		if err := c.AddResource(schemaURL, doc); err != nil {
			compileErr = fmt.Errorf("add resource: %w", err)
			return
		}
		compiled, compileErr = c.Compile(schemaURL)
	})
	if compileErr != nil {
		return fmt.Errorf("compile curriculum schema: %w", compileErr)
	}

	var parsed any
	if err := json.Unmarshal(data, &parsed); err != nil {
		return fmt.Errorf("invalid curriculum JSON: %w", err)
	}
	if err := compiled.Validate(parsed); err != nil {
		return fmt.Errorf("curriculum schema validation failed: %w", err)
	}
	return nil
}

// Resolve loads the curriculum at path, falling back to Default when path
// is empty or the file is unusable.
func Resolve(path string, logger *zap.Logger) *Curriculum {
	if path == "" {
		return Default()
	}
	c, err := LoadFile(path)
	if err != nil {
		logging.OrNop(logger).Warn("using built-in curriculum", zap.String("path", path), zap.Error(err))
		return Default()
	}
	return c
}
