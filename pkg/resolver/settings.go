// Copyright (c) 2017-2026 Digital Asset (Switzerland) GmbH and/or its affiliates. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package resolver

import (
	"encoding/xml"
	"log/slog"
	"net/url"
	"os"

	"github.com/jdx/go-netrc"
	"jgo.dev/x/jgo/pkg/descriptor"
)

type server struct {
	ID       string `xml:"id"`
	Username string `xml:"username"`
	Password string `xml:"password"`
}

type settings struct {
	XMLName xml.Name `xml:"settings"`
	Servers []server `xml:"servers>server"`
}

// renderSettings returns a maven settings file holding credentials for every
// repository whose host has a netrc entry, or nil if there are none
func renderSettings(netrcPath string, repositories []descriptor.Repository) ([]byte, error) {
	if netrcPath == "" {
		return nil, nil
	}
	if _, err := os.Stat(netrcPath); os.IsNotExist(err) {
		return nil, nil
	}

	n, err := netrc.Parse(netrcPath)
	if err != nil {
		return nil, err
	}

	s := settings{}
	for _, r := range repositories {
		u, err := url.Parse(r.URL)
		if err != nil || u.Hostname() == "" {
			slog.Debug("not looking up credentials for repository", "id", r.ID, "url", r.URL)
			continue
		}
		machine := n.Machine(u.Hostname())
		if machine == nil {
			continue
		}
		s.Servers = append(s.Servers, server{
			ID:       r.ID,
			Username: machine.Get("login"),
			Password: machine.Get("password"),
		})
	}
	if len(s.Servers) == 0 {
		return nil, nil
	}

	data, err := xml.MarshalIndent(s, "", "  ")
	if err != nil {
		return nil, err
	}
	return append([]byte(xml.Header), data...), nil
}
