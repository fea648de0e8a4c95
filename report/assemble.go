package report

// Assembler folds a sequence of part tables into one continuous master
// table, running the overlap resolver between every adjacent pair. It keeps
// the final part of the previous batch, so assembly continues across
// invocation batches: only the delta beyond the carried tail is returned,
// never a rewrite of rows already accepted.
type Assembler struct {
	res  *Resolver
	lg   Logger
	tail []Record
}

func NewAssembler(lg Logger) *Assembler {
	if lg == nil {
		lg = NopLogger()
	}
	return &Assembler{res: NewResolver(lg), lg: lg}
}

// Fold appends a batch of part tables, in file order, and returns the rows
// new to the master sequence. The very first part of the first batch is
// taken whole; every later part contributes only its continuation beyond
// the part before it.
func (a *Assembler) Fold(parts [][]Record) []Record {
	var out []Record
	for n, part := range parts {
		if len(part) == 0 {
			// An empty part must not break the overlap chain; the carried
			// tail stays what it was.
			a.lg.Warnf("report part %d of %d is empty, skipping", n+1, len(parts))
			continue
		}
		if a.tail == nil {
			out = append(out, part...)
		} else {
			a.lg.Infof("processing report part %d of %d", n+1, len(parts))
			cont, _ := a.res.Continuation(a.tail, part)
			out = append(out, cont...)
		}
		a.tail = part
	}
	return out
}

// Continuing reports whether the assembler already carries a tail from an
// earlier batch.
func (a *Assembler) Continuing() bool { return a.tail != nil }
