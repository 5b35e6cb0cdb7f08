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
	"os"

	"github.com/gravitational/hostalarm/lib/constants"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/ec2metadata"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/gravitational/trace"
	log "github.com/sirupsen/logrus"
)

// NewSession returns a new AWS session for the specified region.
// If region is empty, it is taken from the AWS_REGION environment variable
// and then from the instance metadata when running on AWS.
func NewSession(region string) (*session.Session, error) {
	if region == "" {
		region = os.Getenv(constants.EnvVarRegion)
	}
	if region == "" {
		var err error
		region, err = LocalRegion()
		if err != nil {
			return nil, trace.Wrap(err)
		}
	}
	log.Debugf("Using AWS region %v.", region)
	session, err := session.NewSession(&aws.Config{
		Region: aws.String(region),
		// Enable verbose error logging
		CredentialsChainVerboseErrors: aws.Bool(true),
	})
	if err != nil {
		return nil, trace.Wrap(err)
	}
	return session, nil
}

// IsRunningOnAWS indicates if the current running process appears to be running
// on an AWS instance by checking the availability of the AWS metadata API
func IsRunningOnAWS() (bool, error) {
	session, err := session.NewSession()
	if err != nil {
		return false, trace.Wrap(err)
	}
	metadata := ec2metadata.New(session)
	return metadata.Available(), nil
}

// LocalRegion returns the region of the AWS instance we are running on
func LocalRegion() (string, error) {
	session, err := session.NewSession()
	if err != nil {
		return "", trace.Wrap(err)
	}
	metadata := ec2metadata.New(session)
	if !metadata.Available() {
		return "", trace.NotFound("AWS region is not set: use --region or %v",
			constants.EnvVarRegion)
	}
	region, err := metadata.Region()
	if err != nil {
		return "", trace.Wrap(err, "failed to fetch region from ec2 metadata service")
	}
	return region, nil
}
