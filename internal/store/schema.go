package store

import (
	"context"
	"fmt"
	"reflect"
	"strings"

	"entgo.io/ent"
	entann "entgo.io/ent/dialect/entsql"
	entsql "entgo.io/ent/dialect/sql"
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"

	entschema "github.com/abhisek/pylearn/ent/schema"
)

// Table names.
const (
	tablePreferences    = "preferences"
	tableRunEvents      = "run_events"
	tableReminderEvents = "reminder_events"
	tableLLMEvents      = "llm_events"
)

// entities are the ent schemas migrated on Open.
var entities = []ent.Interface{
	entschema.Preference{},
	entschema.RunEvent{},
	entschema.ReminderEvent{},
	entschema.LLMRequestEvent{},
}

// migrate creates all tables and indexes that don't exist yet.
func migrate(ctx context.Context, drv *entsql.Driver) error {
	tables := make([]*schema.Table, 0, len(entities))
	for _, e := range entities {
		t, err := tableOf(e)
		if err != nil {
			return err
		}
		tables = append(tables, t)
	}
	m, err := schema.NewMigrate(drv)
	if err != nil {
		return fmt.Errorf("create migrator: %w", err)
	}
	if err := m.Create(ctx, tables...); err != nil {
		return fmt.Errorf("create tables: %w", err)
	}
	return nil
}

// tableOf translates an ent schema into a migration table: an
// auto-increment id, then the mixin and schema fields in order, then
// their indexes.
func tableOf(e ent.Interface) (*schema.Table, error) {
	typeName := reflect.TypeOf(e).Name()
	t := schema.NewTable(tableName(e)).
		AddPrimary(&schema.Column{Name: "id", Type: field.TypeInt, Increment: true})

	var (
		fields  []ent.Field
		indexes []ent.Index
	)
	for _, m := range e.Mixin() {
		fields = append(fields, m.Fields()...)
		indexes = append(indexes, m.Indexes()...)
	}
	fields = append(fields, e.Fields()...)
	indexes = append(indexes, e.Indexes()...)

	for _, f := range fields {
		d := f.Descriptor()
		if d.Err != nil {
			return nil, fmt.Errorf("%s.%s: %w", typeName, d.Name, d.Err)
		}
		t.AddColumn(columnOf(d))
	}
	for _, idx := range indexes {
		d := idx.Descriptor()
		name := d.StorageKey
		if name == "" {
			name = indexName(typeName, d.Fields)
		}
		t.AddIndex(name, d.Unique, d.Fields)
	}
	return t, nil
}

func columnOf(d *field.Descriptor) *schema.Column {
	c := &schema.Column{
		Name:     columnName(d),
		Type:     d.Info.Type,
		Nullable: d.Optional,
		Unique:   d.Unique,
		Size:     int64(d.Size),
	}
	// Function defaults (time.Now and the like) are applied by callers.
	if d.Default != nil && reflect.TypeOf(d.Default).Kind() != reflect.Func {
		c.Default = d.Default
	}
	return c
}

func columnName(d *field.Descriptor) string {
	if d.StorageKey != "" {
		return d.StorageKey
	}
	return d.Name
}

func tableName(e ent.Interface) string {
	for _, a := range e.Annotations() {
		switch a := a.(type) {
		case entann.Annotation:
			if a.Table != "" {
				return a.Table
			}
		case *entann.Annotation:
			if a != nil && a.Table != "" {
				return a.Table
			}
		}
	}
	return strings.ToLower(reflect.TypeOf(e).Name()) + "s"
}

// indexName follows ent's generated naming, e.g. "runevent_week_day".
func indexName(typeName string, fields []string) string {
	return strings.ToLower(typeName) + "_" + strings.Join(fields, "_")
}
