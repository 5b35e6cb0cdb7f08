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

import (
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/gravitational/trace"
)

// IsThrottleError returns true if AWS rejected the request because
// the caller exceeded the API request rate
func IsThrottleError(err error) bool {
	err = trace.Unwrap(err)
	if err == nil {
		return false
	}
	if request.IsErrorThrottle(err) {
		return true
	}
	if awsErr, ok := err.(awserr.Error); ok {
		// CloudWatch and Auto Scaling report throttling as a plain code
		return awsErr.Code() == "Throttling"
	}
	return false
}
