package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/dialect/entsql"
	"entgo.io/ent/schema"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// RunEvent records one execution of a learner's snippet.
type RunEvent struct {
	ent.Schema
}

func (RunEvent) Annotations() []schema.Annotation {
	return []schema.Annotation{entsql.Annotation{Table: "run_events"}}
}

func (RunEvent) Mixin() []ent.Mixin {
	return []ent.Mixin{EventMixin{}}
}

func (RunEvent) Fields() []ent.Field {
	return []ent.Field{
		field.String("run_id").
			Unique().
			Immutable().
			Comment("UUID handed back to the editor"),
		field.String("week").
			Default("").
			Comment("Week the run belongs to; empty for scratch runs"),
		field.Int("day").
			Default(0),
		field.Text("source"),
		field.Text("output").
			Default(""),
		field.String("error").
			Default("").
			Comment("Runner error; empty on success"),
		field.Int64("duration_ms").
			Default(0),
	}
}

func (RunEvent) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("week", "day"),
	}
}
