package roster_test

import (
	"context"
	"fmt"
	"strconv"
	"testing"

	"github.com/dmelnich/roster"
)

// seedStudents adds n records named student-1..student-n with ages
// starting at 20.
func seedStudents(t *testing.T, db *roster.DB, n int) {
	t.Helper()

	if err := db.Update(context.Background(), func(tx *roster.Tx) error {
		for i := 1; i <= n; i++ {
			if _, err := tx.Add(roster.Fields{
				"name": fmt.Sprintf("student-%d", i),
				"age":  strconv.Itoa(19 + i),
			}); err != nil {
				return err
			}
		}

		return nil
	}); err != nil {
		t.Fatal(err)
	}
}
