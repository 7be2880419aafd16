package stream

import (
	"github.com/dkoosis/leftright/pkg/leftright"
	"github.com/dkoosis/leftright/pkg/testjson"
)

// Enumerate lists the classes a run will report, in order of first
// appearance, each with the tests it reports as methods.
func Enumerate(events []testjson.TestEvent, group Group) []leftright.Class {
	parents := make(map[string]bool)
	pkgFailed := make(map[string]bool)
	pkgPanicked := make(map[string]bool)
	for _, e := range events {
		if e.Action == testjson.ActionOutput && isPanic(e.Output) {
			pkgPanicked[e.Package] = true
		}
		if e.IsPackageEvent() {
			continue
		}
		if e.Action == testjson.ActionRun {
			for _, p := range ancestors(e.Test) {
				parents[bufKey(e.Package, p)] = true
			}
		}
		if e.Action == testjson.ActionFail {
			pkgFailed[e.Package] = true
		}
	}

	var classes []leftright.Class
	index := make(map[string]int)
	seen := make(map[string]bool)
	add := func(class, method string) {
		i, ok := index[class]
		if !ok {
			i = len(classes)
			index[class] = i
			classes = append(classes, leftright.Class{Name: class})
		}
		if method == "" || seen[bufKey(class, method)] {
			return
		}
		seen[bufKey(class, method)] = true
		classes[i].Methods = append(classes[i].Methods, method)
	}

	for _, e := range events {
		switch {
		case e.Action == testjson.ActionRun && !e.IsPackageEvent():
			if group == GroupPackage && e.IsSubtest() {
				continue
			}
			if group == GroupTest && parents[bufKey(e.Package, e.Test)] {
				continue
			}
			add(className(e, group), methodName(e, group))
		case e.Action == testjson.ActionFail && e.IsPackageEvent() &&
			(!pkgFailed[e.Package] || pkgPanicked[e.Package]):
			// reported as a package error
			add(e.ShortPackage(), "")
		}
	}
	return classes
}
