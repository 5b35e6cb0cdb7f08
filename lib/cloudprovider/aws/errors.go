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

package aws

import (
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/service/cloudwatch"
	"github.com/aws/aws-sdk-go/service/elasticsearchservice"
	"github.com/aws/aws-sdk-go/service/sns"
	"github.com/gravitational/trace"
)

// ConvertError converts errors specific to AWS to trace-compatible error
func ConvertError(err error) error {
	if err == nil {
		return nil
	}
	awsErr, ok := trace.Unwrap(err).(awserr.Error)
	if !ok {
		return trace.Wrap(err)
	}
	switch awsErr.Code() {
	case cloudwatch.ErrCodeResourceNotFound,
		elasticsearchservice.ErrCodeResourceNotFoundException,
		sns.ErrCodeNotFoundException:
		return trace.NotFound(awsErr.Message())
	case cloudwatch.ErrCodeLimitExceededFault,
		sns.ErrCodeSubscriptionLimitExceededException,
		sns.ErrCodeTopicLimitExceededException:
		return trace.LimitExceeded(awsErr.Message())
	case cloudwatch.ErrCodeInvalidNextToken,
		elasticsearchservice.ErrCodeValidationException,
		sns.ErrCodeInvalidParameterException:
		return trace.BadParameter(awsErr.Message())
	case sns.ErrCodeAuthorizationErrorException:
		return trace.AccessDenied(awsErr.Message())
	}
	return trace.Wrap(err)
}
