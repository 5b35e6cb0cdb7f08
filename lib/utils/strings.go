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

package utils

// StringInSlice returns true if needle is one of the values in haystack
func StringInSlice(haystack []string, needle string) bool {
	for i := range haystack {
		if haystack[i] == needle {
			return true
		}
	}
	return false
}

// SplitSlice splits slice into batches of at most batchSize elements
func SplitSlice(slice []string, batchSize int) (result [][]string) {
	for i := 0; i < len(slice); i += batchSize {
		batchEnd := i + batchSize
		if batchEnd > len(slice) {
			batchEnd = len(slice)
		}
		result = append(result, slice[i:batchEnd])
	}
	return result
}
