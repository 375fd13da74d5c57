/*
 * Copyright 2025 Carver Automation Corporation.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package snmp

import (
	"context"
	"fmt"
	"time"

	"github.com/gosnmp/gosnmp"
)

const (
	defaultPort      = 161
	defaultCommunity = "public"
)

// Version is the SNMP protocol version spoken to printers.
type Version string

const (
	Version1  Version = "v1"
	Version2c Version = "v2c"
)

// TransportConfig configures GoSNMPTransport.
type TransportConfig struct {
	Community string  `json:"community" yaml:"community"`
	Port      uint16  `json:"port" yaml:"port"`
	Version   Version `json:"version" yaml:"version"`
}

// GoSNMPTransport issues one GET per call over UDP. It keeps no connection state
// between calls so concurrent use is safe.
type GoSNMPTransport struct {
	community string
	port      uint16
	version   gosnmp.SnmpVersion
}

// NewGoSNMPTransport validates cfg and applies defaults.
func NewGoSNMPTransport(cfg TransportConfig) (*GoSNMPTransport, error) {
	t := &GoSNMPTransport{
		community: cfg.Community,
		port:      cfg.Port,
	}

	if t.community == "" {
		t.community = defaultCommunity
	}

	if t.port == 0 {
		t.port = defaultPort
	}

	switch cfg.Version {
	case "", Version1, "1":
		t.version = gosnmp.Version1
	case Version2c, "2c":
		t.version = gosnmp.Version2c
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedSNMPVersion, cfg.Version)
	}

	return t, nil
}

func (t *GoSNMPTransport) newClient(ctx context.Context, target string, timeout time.Duration) *gosnmp.GoSNMP {
	return &gosnmp.GoSNMP{
		Context:   ctx,
		Target:    target,
		Port:      t.port,
		Community: t.community,
		Version:   t.version,
		Timeout:   timeout,
		Retries:   0,
		MaxOids:   gosnmp.MaxOids,
	}
}

// Get implements Transport.
func (t *GoSNMPTransport) Get(ctx context.Context, target, oid string, timeout time.Duration) (string, error) {
	client := t.newClient(ctx, target, timeout)

	if err := client.Connect(); err != nil {
		return "", fmt.Errorf("connect %s: %w", target, err)
	}

	defer func() {
		_ = client.Conn.Close()
	}()

	result, err := client.Get([]string{oid})
	if err != nil {
		return "", fmt.Errorf("get %s from %s: %w", oid, target, err)
	}

	if result.Error != gosnmp.NoError {
		return "", fmt.Errorf("get %s from %s: %w: %s", oid, target, ErrNoSuchObject, result.Error)
	}

	if len(result.Variables) == 0 {
		return "", ErrNoVariables
	}

	return renderValue(result.Variables[0])
}

// renderValue converts a PDU to its textual form.
func renderValue(pdu gosnmp.SnmpPDU) (string, error) {
	switch pdu.Type {
	case gosnmp.NoSuchObject, gosnmp.NoSuchInstance, gosnmp.EndOfMibView, gosnmp.Null:
		return "", ErrNoSuchObject
	case gosnmp.OctetString, gosnmp.ObjectDescription:
		switch v := pdu.Value.(type) {
		case []byte:
			return string(v), nil
		case string:
			return v, nil
		default:
			return "", fmt.Errorf("%w: %T for %s", errUnexpectedValue, pdu.Value, pdu.Name)
		}
	case gosnmp.ObjectIdentifier, gosnmp.IPAddress:
		if v, ok := pdu.Value.(string); ok {
			return v, nil
		}

		return "", fmt.Errorf("%w: %T for %s", errUnexpectedValue, pdu.Value, pdu.Name)
	case gosnmp.Integer, gosnmp.Counter32, gosnmp.Gauge32, gosnmp.TimeTicks,
		gosnmp.Counter64, gosnmp.Uinteger32:
		return gosnmp.ToBigInt(pdu.Value).String(), nil
	default:
		return fmt.Sprint(pdu.Value), nil
	}
}
