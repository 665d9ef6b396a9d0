package widget

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/prometheus/procfs"
)

// MemInfo holds /proc/meminfo values in KiB.
type MemInfo map[string]uint64

// ReadMemInfo reads meminfo from the proc filesystem mounted at root.
func ReadMemInfo(root string) (MemInfo, error) {
	fs, err := procfs.NewFS(root)
	if err != nil {
		return nil, err
	}
	mi, err := fs.Meminfo()
	if err != nil {
		return nil, err
	}
	return NewMemInfo(mi)
}

// NewMemInfo keeps the fields of mi that memory formats can refer to.
func NewMemInfo(mi procfs.Meminfo) (MemInfo, error) {
	if mi.MemTotal == nil {
		return nil, fmt.Errorf("meminfo: no MemTotal")
	}
	m := MemInfo{}
	for key, v := range map[string]*uint64{
		"MemTotal":     mi.MemTotal,
		"MemFree":      mi.MemFree,
		"MemAvailable": mi.MemAvailable,
		"Buffers":      mi.Buffers,
		"Cached":       mi.Cached,
		"SReclaimable": mi.SReclaimable,
		"Shmem":        mi.Shmem,
		"SwapTotal":    mi.SwapTotal,
		"SwapFree":     mi.SwapFree,
	} {
		if v != nil {
			m[key] = *v
		}
	}
	return m, nil
}

// Used is total memory less free, buffers and page cache, in KiB.
func (m MemInfo) Used() uint64 {
	free := m["MemFree"] + m["Buffers"] + m["Cached"] + m["SReclaimable"]
	if free > m["MemTotal"] {
		return 0
	}
	return m["MemTotal"] - free
}

var memPlaceholder = regexp.MustCompile(`\{(\w+)(?::\.(\d)f)?\}`)

// Format expands {Key} and {Key:.Nf} placeholders with values in MiB. MemUsed
// and SwapUsed are derived; other keys come from /proc/meminfo. Unknown keys
// are left as is.
func (m MemInfo) Format(tmpl string) string {
	return memPlaceholder.ReplaceAllStringFunc(tmpl, func(s string) string {
		sub := memPlaceholder.FindStringSubmatch(s)
		var kib uint64
		switch v, ok := m[sub[1]]; {
		case sub[1] == "MemUsed":
			kib = m.Used()
		case sub[1] == "SwapUsed":
			kib = m["SwapTotal"] - min(m["SwapFree"], m["SwapTotal"])
		case ok:
			kib = v
		default:
			return s
		}
		prec := 0
		if sub[2] != "" {
			prec, _ = strconv.Atoi(sub[2])
		}
		return strconv.FormatFloat(float64(kib)/1024, 'f', prec, 64)
	})
}
