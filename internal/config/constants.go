package config

// DefaultDatabasePath is the default path for the reader database.
const DefaultDatabasePath = "./lectern.db"
