// Package testdb provides helpers for tests that run against a real
// PostgreSQL database.
//
// Each test runs in its own transaction, which is rolled back when the test
// completes, so tests can share one database without cleaning up after
// themselves:
//
//	func TestSomething(t *testing.T) {
//	    db := testdb.GetTestDBWithT(t)
//	    testdb.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
//	        autos := postgres.NewPostgresAutoStore(tx, nil)
//	        // ...
//	    })
//	}
//
// Tests are skipped when DATABASE_URL is not set.
package testdb
