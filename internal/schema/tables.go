package schema

import (
	"entgo.io/ent/dialect"
	"entgo.io/ent/dialect/entsql"
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"
)

// Table names. The schedule table keeps its historical spelling.
const (
	DoctorTableName          = "doctor"
	PatientTableName         = "patient"
	ScheduleTableName        = "shedule"
	ServiceTableName         = "service"
	ReceptionTableName       = "reception"
	ServiceRenderedTableName = "service_rendered"
)

func idColumn() *schema.Column {
	return &schema.Column{Name: "id", Type: field.TypeInt, Increment: true}
}

func refColumn(name string) *schema.Column {
	return &schema.Column{Name: name, Type: field.TypeInt, Nullable: true}
}

// trigramIndex speeds up similarity() and ILIKE on a text column.
func trigramIndex(table string, col *schema.Column) *schema.Index {
	return &schema.Index{
		Name:    table + "_" + col.Name + "_trgm",
		Columns: []*schema.Column{col},
		Annotation: &entsql.IndexAnnotation{
			Types:   map[string]string{dialect.Postgres: "GIN"},
			OpClass: "gin_trgm_ops",
		},
	}
}

var (
	// DoctorColumns holds the columns for the "doctor" table.
	DoctorColumns = []*schema.Column{
		idColumn(),
		{Name: "full_name", Type: field.TypeString, Size: 100},
		{Name: "phone_number", Type: field.TypeString, Size: 128, Unique: true},
		{Name: "office_number", Type: field.TypeString, Size: 10, Default: ""},
	}
	// DoctorTable holds the schema information for the "doctor" table.
	DoctorTable = &schema.Table{
		Name:       DoctorTableName,
		Columns:    DoctorColumns,
		PrimaryKey: []*schema.Column{DoctorColumns[0]},
		Indexes: []*schema.Index{
			trigramIndex(DoctorTableName, DoctorColumns[1]),
			trigramIndex(DoctorTableName, DoctorColumns[2]),
		},
	}

	// PatientColumns holds the columns for the "patient" table.
	PatientColumns = []*schema.Column{
		idColumn(),
		{Name: "full_name", Type: field.TypeString, Size: 100},
		{Name: "phone_number", Type: field.TypeString, Size: 128, Unique: true},
		{Name: "patient_address", Type: field.TypeString, Size: 100, Default: ""},
	}
	// PatientTable holds the schema information for the "patient" table.
	PatientTable = &schema.Table{
		Name:       PatientTableName,
		Columns:    PatientColumns,
		PrimaryKey: []*schema.Column{PatientColumns[0]},
		Indexes: []*schema.Index{
			trigramIndex(PatientTableName, PatientColumns[1]),
			trigramIndex(PatientTableName, PatientColumns[3]),
		},
	}

	// ScheduleColumns holds the columns for the "shedule" table.
	ScheduleColumns = []*schema.Column{
		idColumn(),
		refColumn("doctor_id"),
		{Name: "day_week", Type: field.TypeInt, Default: 0},
		{Name: "start_reception", Type: field.TypeTime, SchemaType: map[string]string{dialect.Postgres: "time"}},
		{Name: "end_reception", Type: field.TypeTime, SchemaType: map[string]string{dialect.Postgres: "time"}},
	}
	// ScheduleTable holds the schema information for the "shedule" table.
	ScheduleTable = &schema.Table{
		Name:       ScheduleTableName,
		Columns:    ScheduleColumns,
		PrimaryKey: []*schema.Column{ScheduleColumns[0]},
		ForeignKeys: []*schema.ForeignKey{
			{
				Symbol:     "shedule_doctor_id_fkey",
				Columns:    []*schema.Column{ScheduleColumns[1]},
				RefColumns: []*schema.Column{DoctorColumns[0]},
				OnDelete:   schema.SetNull,
			},
		},
	}

	// ServiceColumns holds the columns for the "service" table.
	ServiceColumns = []*schema.Column{
		idColumn(),
		{Name: "service_name", Type: field.TypeString, Size: 50},
		{Name: "cost", Type: field.TypeFloat64},
	}
	// ServiceTable holds the schema information for the "service" table.
	ServiceTable = &schema.Table{
		Name:       ServiceTableName,
		Columns:    ServiceColumns,
		PrimaryKey: []*schema.Column{ServiceColumns[0]},
		Indexes: []*schema.Index{
			trigramIndex(ServiceTableName, ServiceColumns[1]),
		},
	}

	// ReceptionColumns holds the columns for the "reception" table.
	ReceptionColumns = []*schema.Column{
		idColumn(),
		{Name: "date_reception", Type: field.TypeTime, SchemaType: map[string]string{dialect.Postgres: "date"}},
		{Name: "time_reception", Type: field.TypeTime, SchemaType: map[string]string{dialect.Postgres: "time"}},
		refColumn("patient_id"),
		refColumn("doctor_id"),
	}
	// ReceptionTable holds the schema information for the "reception" table.
	ReceptionTable = &schema.Table{
		Name:       ReceptionTableName,
		Columns:    ReceptionColumns,
		PrimaryKey: []*schema.Column{ReceptionColumns[0]},
		ForeignKeys: []*schema.ForeignKey{
			{
				Symbol:     "reception_patient_id_fkey",
				Columns:    []*schema.Column{ReceptionColumns[3]},
				RefColumns: []*schema.Column{PatientColumns[0]},
				OnDelete:   schema.SetNull,
			},
			{
				Symbol:     "reception_doctor_id_fkey",
				Columns:    []*schema.Column{ReceptionColumns[4]},
				RefColumns: []*schema.Column{DoctorColumns[0]},
				OnDelete:   schema.SetNull,
			},
		},
	}

	// ServiceRenderedColumns holds the columns for the "service_rendered" table.
	ServiceRenderedColumns = []*schema.Column{
		idColumn(),
		refColumn("service_id"),
		refColumn("number_reception_id"),
		{Name: "quantity", Type: field.TypeInt, Default: 0},
	}
	// ServiceRenderedTable holds the schema information for the "service_rendered" table.
	ServiceRenderedTable = &schema.Table{
		Name:       ServiceRenderedTableName,
		Columns:    ServiceRenderedColumns,
		PrimaryKey: []*schema.Column{ServiceRenderedColumns[0]},
		ForeignKeys: []*schema.ForeignKey{
			{
				Symbol:     "service_rendered_service_id_fkey",
				Columns:    []*schema.Column{ServiceRenderedColumns[1]},
				RefColumns: []*schema.Column{ServiceColumns[0]},
				OnDelete:   schema.SetNull,
			},
			{
				Symbol:     "service_rendered_number_reception_id_fkey",
				Columns:    []*schema.Column{ServiceRenderedColumns[2]},
				RefColumns: []*schema.Column{ReceptionColumns[0]},
				OnDelete:   schema.SetNull,
			},
		},
	}

	// Tables holds all the tables in the schema, parents first.
	Tables = []*schema.Table{
		DoctorTable,
		PatientTable,
		ScheduleTable,
		ServiceTable,
		ReceptionTable,
		ServiceRenderedTable,
	}
)

func init() {
	ScheduleTable.ForeignKeys[0].RefTable = DoctorTable
	ReceptionTable.ForeignKeys[0].RefTable = PatientTable
	ReceptionTable.ForeignKeys[1].RefTable = DoctorTable
	ServiceRenderedTable.ForeignKeys[0].RefTable = ServiceTable
	ServiceRenderedTable.ForeignKeys[1].RefTable = ReceptionTable
}
