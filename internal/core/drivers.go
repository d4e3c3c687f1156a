package core

import (
	// Drivers for the dialects registered in internal/dialects.
	_ "github.com/go-sql-driver/mysql"
	_ "modernc.org/sqlite"
)
