package messagegorm

import (
	"sync"
	"testing"

	"gorm.io/gorm/schema"
)

func parseModel(t *testing.T) *schema.Schema {
	t.Helper()
	s, err := schema.Parse(&RequestModel{}, &sync.Map{}, schema.NamingStrategy{})
	if err != nil {
		t.Fatalf("parse schema: %v", err)
	}
	return s
}

func TestRequestModel_RecipientHasNoLengthLimit(t *testing.T) {
	field := parseModel(t).LookUpField("To")
	if field == nil {
		t.Fatal("no To field")
	}
	if field.Size != 0 {
		t.Fatalf("To size = %d, want unlimited", field.Size)
	}
	if field.TagSettings["TYPE"] != "text" {
		t.Fatalf("To type = %q, want text", field.TagSettings["TYPE"])
	}
}

func TestRequestModel_NoSoftDelete(t *testing.T) {
	if f := parseModel(t).LookUpField("DeletedAt"); f != nil {
		t.Fatal("sms_requests rows are never deleted; DeletedAt should not exist")
	}
}
