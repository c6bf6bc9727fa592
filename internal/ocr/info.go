package ocr

import "os/exec"

// Info describes the availability of an OCR backend.
type Info struct {
	Available bool   `json:"available"`
	Backend   string `json:"backend"`
	Version   string `json:"version,omitempty"`
	Language  string `json:"language"`
	Binary    string `json:"binary,omitempty"`
	Error     string `json:"error,omitempty"`
}

// Probe checks whether the backend selected by o can run.
// It never fails; problems are reported in Info.Error.
func Probe(o Options) Info {
	o = o.withDefaults()
	info := Info{Backend: o.Backend, Language: o.Language}

	switch o.Backend {
	case BackendCLI:
		path, err := exec.LookPath(o.Binary)
		if err != nil {
			info.Error = err.Error()
			return info
		}
		info.Binary = path
		version, err := commandVersion(path)
		if err != nil {
			info.Error = err.Error()
			return info
		}
		info.Available = true
		info.Version = version
	case BackendGosseract:
		version, err := gosseractVersion()
		if err != nil {
			info.Error = err.Error()
			return info
		}
		info.Available = true
		info.Version = version
	default:
		_, err := NewFactory(o)
		info.Error = err.Error()
	}
	return info
}
