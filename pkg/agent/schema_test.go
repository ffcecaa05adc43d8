package agent

import (
	"reflect"
	"testing"
)

func TestGenerateJSONSchemaStruct(t *testing.T) {
	type input struct {
		ItemName string   `json:"item_name" desc:"the item"`
		Quantity int      `json:"quantity,omitempty" desc:"how many"`
		Tags     []string `json:"tags,omitempty"`
		Mode     string   `json:"mode" enum:"learn,quiz,teach_back"`
		hidden   string
	}
	_ = input{hidden: ""}

	schema := GenerateJSONSchema(reflect.TypeOf(input{}))
	if schema.Type != "object" {
		t.Fatalf("type = %q, want object", schema.Type)
	}
	if len(schema.Properties) != 4 {
		t.Fatalf("got %d properties, want 4", len(schema.Properties))
	}

	name := schema.Properties["item_name"]
	if name.Type != "string" || name.Description != "the item" {
		t.Errorf("item_name schema = %+v", name)
	}
	if schema.Properties["quantity"].Type != "integer" {
		t.Errorf("quantity type = %q", schema.Properties["quantity"].Type)
	}
	tags := schema.Properties["tags"]
	if tags.Type != "array" || tags.Items == nil || tags.Items.Type != "string" {
		t.Errorf("tags schema = %+v", tags)
	}
	if got := schema.Properties["mode"].Enum; len(got) != 3 || got[0] != "learn" {
		t.Errorf("mode enum = %v", got)
	}

	// omitempty fields are optional.
	required := map[string]bool{}
	for _, r := range schema.Required {
		required[r] = true
	}
	if !required["item_name"] || !required["mode"] {
		t.Errorf("required = %v, want item_name and mode", schema.Required)
	}
	if required["quantity"] || required["tags"] {
		t.Errorf("required = %v, quantity and tags should be optional", schema.Required)
	}
}

func TestGenerateJSONSchemaEmptyStruct(t *testing.T) {
	schema := GenerateJSONSchema(reflect.TypeOf(struct{}{}))
	if schema.Type != "object" || len(schema.Properties) != 0 {
		t.Fatalf("empty struct schema = %+v", schema)
	}
}

func TestGenerateJSONSchemaNil(t *testing.T) {
	schema := GenerateJSONSchema(nil)
	if schema == nil {
		t.Fatal("nil schema")
	}
}
