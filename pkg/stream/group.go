package stream

import (
	"fmt"
	"strings"

	"github.com/dkoosis/leftright/pkg/testjson"
)

// Group selects what a left-column class stands for.
type Group int

const (
	// GroupPackage makes each package a class and its top-level tests the
	// methods. Subtests fold into their parent.
	GroupPackage Group = iota
	// GroupTest makes each top-level test a class and its subtests the
	// methods. Only leaf tests are reported.
	GroupTest
)

func (g Group) String() string {
	switch g {
	case GroupPackage:
		return "package"
	case GroupTest:
		return "test"
	}
	return fmt.Sprintf("Group(%d)", int(g))
}

// ParseGroup accepts "package" or "test".
func ParseGroup(s string) (Group, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "package", "pkg":
		return GroupPackage, nil
	case "test":
		return GroupTest, nil
	}
	return GroupPackage, fmt.Errorf("unknown group %q (want package or test)", s)
}

// className returns the class a test event is reported under.
func className(e testjson.TestEvent, g Group) string {
	if g == GroupTest && !e.IsPackageEvent() {
		return e.TopLevel()
	}
	return e.ShortPackage()
}

// methodName returns the test name shown in fault headers.
func methodName(e testjson.TestEvent, g Group) string {
	if g == GroupTest {
		if _, sub, ok := strings.Cut(e.Test, "/"); ok {
			return sub
		}
	}
	return e.Test
}

// ancestors returns the parent test names of a subtest, nearest first.
func ancestors(test string) []string {
	var out []string
	for {
		i := strings.LastIndex(test, "/")
		if i < 0 {
			return out
		}
		test = test[:i]
		out = append(out, test)
	}
}

// bufKey returns the output buffer key for a package/test pair.
func bufKey(pkg, test string) string {
	return pkg + "\x00" + test
}
