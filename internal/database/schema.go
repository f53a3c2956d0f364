package database

import (
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"
)

// Table names.
const (
	TableLists = "lists"
	TableTasks = "tasks"
)

var (
	// ListsColumns holds the columns for the "lists" table.
	ListsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt64, Increment: true},
		{Name: "title", Type: field.TypeString, Size: 250},
		{Name: "archived", Type: field.TypeBool, Default: false},
	}
	// ListsTable holds the schema information for the "lists" table.
	ListsTable = &schema.Table{
		Name:       TableLists,
		Columns:    ListsColumns,
		PrimaryKey: []*schema.Column{ListsColumns[0]},
	}
	// TasksColumns holds the columns for the "tasks" table.
	TasksColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt64, Increment: true},
		{Name: "list_id", Type: field.TypeInt64},
		{Name: "title", Type: field.TypeString, Size: 250},
		{Name: "due_date", Type: field.TypeTime, Nullable: true},
		{Name: "completed", Type: field.TypeBool, Default: false},
		{Name: "priority", Type: field.TypeInt, Default: 0},
	}
	// TasksTable holds the schema information for the "tasks" table.
	TasksTable = &schema.Table{
		Name:       TableTasks,
		Columns:    TasksColumns,
		PrimaryKey: []*schema.Column{TasksColumns[0]},
		ForeignKeys: []*schema.ForeignKey{
			{
				Symbol:     "tasks_lists_tasks",
				Columns:    []*schema.Column{TasksColumns[1]},
				RefColumns: []*schema.Column{ListsColumns[0]},
				OnDelete:   schema.Cascade,
			},
		},
		Indexes: []*schema.Index{
			{
				Name:    "task_list_id",
				Unique:  false,
				Columns: []*schema.Column{TasksColumns[1]},
			},
		},
	}
	// Tables holds all the tables in the schema.
	Tables = []*schema.Table{
		ListsTable,
		TasksTable,
	}
)

func init() {
	TasksTable.ForeignKeys[0].RefTable = ListsTable
}
