// Package all wires the built-in storage backends into the storage factory.
//
// It exists purely for side effects: importing it (even blank) runs the init
// functions of each backend, which register their factories and DDL
// bootstrappers with the storage package. A binary that needs only one
// backend can import that backend package directly instead.
package all

import (
	_ "ordermart/internal/storage/postgres"
	_ "ordermart/internal/storage/sqlite"
)
