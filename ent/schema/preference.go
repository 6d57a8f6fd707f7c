package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/dialect/entsql"
	"entgo.io/ent/schema"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// Preference is one namespaced key-value setting.
type Preference struct {
	ent.Schema
}

func (Preference) Annotations() []schema.Annotation {
	return []schema.Annotation{entsql.Annotation{Table: "preferences"}}
}

func (Preference) Fields() []ent.Field {
	return []ent.Field{
		field.String("namespace"),
		field.String("key"),
		field.String("value"),
		field.Int64("updated_at").
			Comment("Unix milliseconds of the last write"),
	}
}

func (Preference) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("namespace", "key").Unique(),
	}
}
