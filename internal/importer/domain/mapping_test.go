package importer

import "testing"

func TestColumnMappingOneToOne(t *testing.T) {
	mapping := NewColumnMapping()
	mapping.Assign("Show Title", FieldEventTitle)
	mapping.Assign("Event Name", FieldEventTitle)

	if _, ok := mapping.FieldFor("Show Title"); ok {
		t.Fatal("expected prior column to be cleared")
	}
	header, ok := mapping.HeaderFor(FieldEventTitle)
	if !ok || header != "Event Name" {
		t.Fatalf("expected Event Name, got %q", header)
	}
	if mapping.Len() != 1 {
		t.Fatalf("expected 1 assignment, got %d", mapping.Len())
	}
}

func TestColumnMappingClear(t *testing.T) {
	mapping := NewColumnMapping()
	mapping.Assign("Date", FieldStartDate)
	mapping.Clear(FieldStartDate)
	if _, ok := mapping.HeaderFor(FieldStartDate); ok {
		t.Fatal("expected assignment removed")
	}
}

func TestRequiredFieldsByLayout(t *testing.T) {
	standard := RequiredFields(false)
	if len(standard) != 2 || standard[0] != FieldEventTitle || standard[1] != FieldStartDate {
		t.Fatalf("unexpected standard required set: %v", standard)
	}
	dayColumns := RequiredFields(true)
	if len(dayColumns) != 1 || dayColumns[0] != FieldEventTitle {
		t.Fatalf("unexpected day-column required set: %v", dayColumns)
	}
}

func TestMissingRequired(t *testing.T) {
	mapping := NewColumnMapping()
	mapping.Assign("Title", FieldEventTitle)
	missing := mapping.MissingRequired(RequiredFields(false))
	if len(missing) != 1 || missing[0] != FieldStartDate {
		t.Fatalf("expected start_date missing, got %v", missing)
	}
}
