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

package cli

import (
	"context"
	"os"

	"github.com/gravitational/hostalarm/lib/alarms"
	autoscaleaws "github.com/gravitational/hostalarm/lib/autoscale/aws"
	cloudaws "github.com/gravitational/hostalarm/lib/cloudprovider/aws"
	"github.com/gravitational/hostalarm/lib/config"
	"github.com/gravitational/hostalarm/lib/constants"
	"github.com/gravitational/hostalarm/lib/defaults"
	"github.com/gravitational/hostalarm/lib/utils"

	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/gravitational/trace"
	"github.com/sirupsen/logrus"
)

var log = logrus.WithField(trace.Component, constants.ComponentCLI)

// Run parses CLI arguments and executes an appropriate hostalarm command
func Run(hostalarm Application) error {
	log.Debugf("Executing: %v.", os.Args)
	cmd, err := hostalarm.Parse(os.Args[1:])
	if err != nil {
		return trace.Wrap(err)
	}

	trace.SetDebug(*hostalarm.Debug)
	if *hostalarm.Debug {
		utils.InitLogger(logrus.DebugLevel)
	} else {
		utils.InitLogger(logrus.WarnLevel)
	}

	ctx, cancel := defaults.WithTimeout(context.Background())
	defer cancel()
	utils.WatchTerminationSignals(ctx, cancel, log)

	switch cmd {
	case hostalarm.AlarmsDecodeCmd.FullCommand():
		return decodeAlarmName(*hostalarm.AlarmsDecodeCmd.Name,
			*hostalarm.AlarmsDecodeCmd.Format)
	case hostalarm.ELBIDCmd.FullCommand():
		env, err := newEnvironment(hostalarm)
		if err != nil {
			return trace.Wrap(err)
		}
		return printLoadBalancer(env.Environment,
			*hostalarm.ELBIDCmd.Hostclass,
			*hostalarm.ELBIDCmd.Domain,
			*hostalarm.ELBIDCmd.Testing)
	}

	env, err := newEnvironment(hostalarm)
	if err != nil {
		return trace.Wrap(err)
	}

	switch cmd {
	case hostalarm.AlarmsListCmd.FullCommand():
		return listAlarms(ctx, env,
			*hostalarm.AlarmsListCmd.Hostclass,
			*hostalarm.AlarmsListCmd.AutoscalingGroup,
			*hostalarm.AlarmsListCmd.Format)
	case hostalarm.AlarmsCreateCmd.FullCommand():
		return createAlarms(ctx, env,
			*hostalarm.AlarmsCreateCmd.Hostclass,
			*hostalarm.AlarmsCreateCmd.AutoscalingGroup,
			*hostalarm.AlarmsCreateCmd.DryRun)
	case hostalarm.AlarmsDeleteCmd.FullCommand():
		return deleteAlarms(ctx, env, *hostalarm.AlarmsDeleteCmd.Hostclass)
	case hostalarm.NotificationsListCmd.FullCommand():
		return listNotifications(env, *hostalarm.NotificationsListCmd.Format)
	case hostalarm.NotificationsSyncCmd.FullCommand():
		return syncNotifications(ctx, env)
	}

	return trace.NotFound("unknown command %v", cmd)
}

// environment is the context shared by commands operating on an environment
type environment struct {
	// Environment is the environment name
	Environment string
	// Region is the AWS region, may be empty
	Region string
	// ConfigPath is the path to the alarm configuration file
	ConfigPath string

	session *session.Session
}

func newEnvironment(hostalarm Application) (*environment, error) {
	if *hostalarm.Environment == "" {
		return nil, trace.BadParameter("environment is not set: use --env or %v",
			constants.EnvVarEnvironment)
	}
	return &environment{
		Environment: *hostalarm.Environment,
		Region:      *hostalarm.Region,
		ConfigPath:  *hostalarm.ConfigPath,
	}, nil
}

// Session returns the AWS session, creating it on first use
func (e *environment) Session() (*session.Session, error) {
	if e.session != nil {
		return e.session, nil
	}
	session, err := cloudaws.NewSession(e.Region)
	if err != nil {
		return nil, trace.Wrap(err)
	}
	e.session = session
	return session, nil
}

// Resolver loads the alarm configuration and returns a resolver for it.
// AWS lookups are only set up when the configuration needs them.
func (e *environment) Resolver() (*alarms.Resolver, error) {
	store, err := config.LoadForEnvironment(e.ConfigPath, e.Environment)
	if err != nil {
		return nil, trace.Wrap(err)
	}
	cfg := alarms.Config{
		Environment: e.Environment,
		Store:       store,
		NewAutoscale: func() (alarms.AutoscaleLookup, error) {
			session, err := e.Session()
			if err != nil {
				return nil, trace.Wrap(err)
			}
			return autoscaleaws.New(autoscaleaws.Config{
				Environment: e.Environment,
				Session:     session,
			})
		},
	}
	if hasNamespace(store, constants.NamespaceES) {
		session, err := e.Session()
		if err != nil {
			return nil, trace.Wrap(err)
		}
		cfg.Search = cloudaws.NewElasticsearch(e.Environment, session)
	}
	return alarms.New(cfg)
}

func hasNamespace(store alarms.ConfigStore, namespace string) bool {
	for _, name := range store.Sections() {
		section, err := alarms.DecodeSection(name)
		if err == nil && section.Namespace == namespace {
			return true
		}
	}
	return false
}
