package schema

import (
	"testing"

	"entgo.io/ent/dialect/sql/schema"
)

func TestForeignKeysSetNull(t *testing.T) {
	for _, table := range Tables {
		for _, fk := range table.ForeignKeys {
			if fk.OnDelete != schema.SetNull {
				t.Errorf("%s.%s: on delete %q, want SET NULL", table.Name, fk.Symbol, fk.OnDelete)
			}
			if fk.RefTable == nil {
				t.Errorf("%s.%s: reference table not linked", table.Name, fk.Symbol)
			}
			for _, col := range fk.Columns {
				if !col.Nullable {
					t.Errorf("%s.%s must be nullable", table.Name, col.Name)
				}
			}
		}
	}
}

func TestPhoneNumbersUnique(t *testing.T) {
	for _, table := range []*schema.Table{DoctorTable, PatientTable} {
		col, ok := table.Column("phone_number")
		if !ok || !col.Unique {
			t.Errorf("%s.phone_number must be unique", table.Name)
		}
	}
}

func TestTablesParentsFirst(t *testing.T) {
	seen := map[string]bool{}
	for _, table := range Tables {
		for _, fk := range table.ForeignKeys {
			if !seen[fk.RefTable.Name] {
				t.Errorf("%s references %s before it is created", table.Name, fk.RefTable.Name)
			}
		}
		seen[table.Name] = true
	}
}
