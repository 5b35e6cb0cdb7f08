/*
Copyright 2020 Gravitational, Inc.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package compare provides gocheck checkers that report readable diffs
package compare

import (
	"reflect"
	"sort"

	"github.com/davecgh/go-spew/spew"
	"github.com/kylelemons/godebug/diff"
	check "gopkg.in/check.v1"
)

// DeepEquals is a gocheck checker that provides a readable diff in case
// comparison fails.
var DeepEquals check.Checker = &deepEqualsChecker{
	&check.CheckerInfo{Name: "DeepEquals", Params: []string{"obtained", "expected"}},
}

// Check expects two items in params (obtained and expected) and compares them using reflection.
// If comparison fails, it returns a readable diff in error.
// Implements gocheck checker interface
func (checker *deepEqualsChecker) Check(params []interface{}, names []string) (result bool, error string) {
	result = reflect.DeepEqual(params[0], params[1])
	if !result {
		error = Diff(params[0], params[1])
	}
	return result, error
}

// UnorderedEquals is a gocheck checker that compares two string slices
// regardless of the order of their elements. The slices are not modified.
var UnorderedEquals check.Checker = &unorderedEqualsChecker{
	&check.CheckerInfo{Name: "UnorderedEquals", Params: []string{"obtained", "expected"}},
}

// Check expects two string slices in params (obtained and expected).
// Implements gocheck checker interface
func (checker *unorderedEqualsChecker) Check(params []interface{}, names []string) (result bool, error string) {
	obtained, ok := params[0].([]string)
	if !ok {
		return false, "obtained value is not a []string"
	}
	expected, ok := params[1].([]string)
	if !ok {
		return false, "expected value is not a []string"
	}
	obtained = sorted(obtained)
	expected = sorted(expected)
	result = reflect.DeepEqual(obtained, expected)
	if !result {
		error = Diff(obtained, expected)
	}
	return result, error
}

// Diff returns user friendly difference between two objects
func Diff(a, b interface{}) string {
	d := &spew.ConfigState{Indent: " ", DisableMethods: true, DisablePointerMethods: true, DisablePointerAddresses: true}
	return diff.Diff(d.Sdump(a), d.Sdump(b))
}

func sorted(values []string) []string {
	if values == nil {
		return nil
	}
	out := append([]string(nil), values...)
	sort.Strings(out)
	return out
}

type deepEqualsChecker struct {
	*check.CheckerInfo
}

type unorderedEqualsChecker struct {
	*check.CheckerInfo
}
