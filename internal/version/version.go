package version

// Version is the current version of dbsize.
// Can be overridden at build time with -ldflags "-X ...version.Version=..."
var Version = "1.2.0"

// Name is the application name.
const Name = "dbsize"

// Description is a short description of the application.
const Description = "SQLite database storage analyzer"
