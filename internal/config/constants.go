package config

// Version is the released version string, shown by -version and in the
// interactive greeting.
const Version = "0.3.0"

// DefaultPrompt is used when the config file does not override it.
const DefaultPrompt = "sham> "

// ConfigFileName is the per-user config file looked up in the home
// directory when -c is not given.
const ConfigFileName = ".shamrc"

// Comment prefix recognized in command scripts.
const CommentPrefix = "#"
