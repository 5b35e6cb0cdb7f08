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

package defaults

import (
	"context"
	"time"

	"github.com/cenkalti/backoff"
)

const (
	// AlarmsConfigFile is the default name of the alarm configuration file
	AlarmsConfigFile = "alarms.ini"

	// ThrottleInitialInterval is the first delay before retrying a throttled AWS call
	ThrottleInitialInterval = 500 * time.Millisecond
	// ThrottleMaxInterval caps the delay between retries of a throttled AWS call
	ThrottleMaxInterval = 30 * time.Second
	// ThrottleMaxElapsedTime is the total time a throttled AWS call is retried for
	ThrottleMaxElapsedTime = 5 * time.Minute

	// AWSRequestTimeout bounds a single command's AWS interaction
	AWSRequestTimeout = 10 * time.Minute

	// ELBIDLength is the length of the hashed load balancer identifier
	ELBIDLength = 32
	// ELBNameMaxLength is the maximum length of a load balancer name
	ELBNameMaxLength = 255
	// TargetGroupNameMaxLength is the maximum length of a target group name
	TargetGroupNameMaxLength = 32
	// TargetGroupHashLength is the number of hash characters appended to
	// truncated target group names
	TargetGroupHashLength = 5

	// ESDomainPrefix prefixes every Elasticsearch Service domain name
	ESDomainPrefix = "es"

	// DescribeAlarmsPageSize is the page size used when listing alarms
	DescribeAlarmsPageSize = 100
	// DeleteAlarmsBatchSize is the maximum number of alarms deleted per request
	DeleteAlarmsBatchSize = 100
)

// WithTimeout returns a default timeout context
func WithTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, AWSRequestTimeout)
}

// ThrottleBackOff returns the backoff interval used for throttled AWS calls
func ThrottleBackOff() *backoff.ExponentialBackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = ThrottleInitialInterval
	b.MaxInterval = ThrottleMaxInterval
	b.MaxElapsedTime = ThrottleMaxElapsedTime
	return b
}
