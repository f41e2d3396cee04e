package main

import (
	"strconv"

	"github.com/tidwall/sjson"
)

// Run accumulates one JSON document describing every case tried, built
// incrementally with sjson rather than marshaled from a struct in one
// shot, so a case can be appended as soon as it finishes without
// holding the whole report in a parallel Go slice.
type Run struct {
	Passed, Failed, Skipped int
	json                    string
	index                   int
}

func NewRun() *Run {
	return &Run{json: "{}"}
}

func (r *Run) recordPass(name string) {
	r.Passed++
	r.append(name, "pass", "")
}

func (r *Run) recordFail(name, message string) {
	r.Failed++
	r.append(name, "fail", message)
}

func (r *Run) append(name, status, message string) {
	prefix := "cases." + strconv.Itoa(r.index)
	r.json = setOrPanic(r.json, prefix+".name", name)
	r.json = setOrPanic(r.json, prefix+".status", status)
	if message != "" {
		r.json = setOrPanic(r.json, prefix+".message", message)
	}
	r.index++
}

func (r *Run) JSON() string {
	s := r.json
	s = setOrPanic(s, "summary.passed", r.Passed)
	s = setOrPanic(s, "summary.failed", r.Failed)
	s = setOrPanic(s, "summary.skipped", r.Skipped)
	return s
}

func setOrPanic(json, path string, value any) string {
	out, err := sjson.Set(json, path, value)
	if err != nil {
		panic(err)
	}
	return out
}

