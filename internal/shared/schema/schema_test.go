package schema_test

import (
	"testing"

	"github.com/pathakpriyanka774/hrms-lite/internal/shared/schema"
	"github.com/pathakpriyanka774/hrms-lite/internal/shared/testdb"

	"github.com/stretchr/testify/assert"
)

func TestMigrate_IsIdempotent(t *testing.T) {
	db := testdb.Open(t)

	assert.NoError(t, schema.Migrate(db))

	for _, table := range []string{"employees", "attendance", "outbox_events"} {
		assert.True(t, db.Migrator().HasTable(table), table)
	}
}

func TestMigrate_AttendanceConstraints(t *testing.T) {
	db := testdb.Open(t)

	assert.NoError(t, db.Exec(`INSERT INTO employees (employee_id, full_name, email, department) VALUES ('E1', 'Ann', 'ann@corp.io', 'Ops')`).Error)

	assert.Error(t, db.Exec(`INSERT INTO attendance (employee_id, date, status) VALUES ('E1', '2024-01-10', 'Late')`).Error)
	assert.Error(t, db.Exec(`INSERT INTO attendance (employee_id, date, status) VALUES ('NOPE', '2024-01-10', 'Present')`).Error)

	assert.NoError(t, db.Exec(`INSERT INTO attendance (employee_id, date, status) VALUES ('E1', '2024-01-10', 'Present')`).Error)
	assert.Error(t, db.Exec(`INSERT INTO attendance (employee_id, date, status) VALUES ('E1', '2024-01-10', 'Absent')`).Error)

	assert.NoError(t, db.Exec(`DELETE FROM employees WHERE employee_id = 'E1'`).Error)
	var remaining int64
	assert.NoError(t, db.Table("attendance").Count(&remaining).Error)
	assert.Equal(t, int64(0), remaining)
}
