package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/dialect/entsql"
	"entgo.io/ent/schema"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// ReminderEvent records a registration, cancellation or firing of the
// daily reminder.
type ReminderEvent struct {
	ent.Schema
}

func (ReminderEvent) Annotations() []schema.Annotation {
	return []schema.Annotation{entsql.Annotation{Table: "reminder_events"}}
}

func (ReminderEvent) Mixin() []ent.Mixin {
	return []ent.Mixin{EventMixin{}}
}

func (ReminderEvent) Fields() []ent.Field {
	return []ent.Field{
		field.String("action").
			Comment("registered, cancelled or fired"),
		field.String("callback_id"),
		field.Int64("trigger_at").
			Default(0).
			Comment("Unix milliseconds of the next trigger; 0 when not applicable"),
		field.String("message").
			Default("").
			Comment("Notification body for fired events"),
		field.String("error").
			Default(""),
	}
}

func (ReminderEvent) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("action"),
	}
}
