package reader

// Options configures how inputs are parsed
type Options struct {
	Separator string // Cell separator for delimited text (default ",")
	Comment   string // Comment marker that introduces the header line (default "#")
	MaxFiles  int    // Upper bound on files matched by one glob pattern (default 1000)
}

// DefaultOptions returns comma-separated input with "#" headers
func DefaultOptions() Options {
	return Options{Separator: ",", Comment: "#", MaxFiles: 1000}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.Separator == "" {
		o.Separator = d.Separator
	}
	if o.Comment == "" {
		o.Comment = d.Comment
	}
	if o.MaxFiles <= 0 {
		o.MaxFiles = d.MaxFiles
	}
	return o
}
