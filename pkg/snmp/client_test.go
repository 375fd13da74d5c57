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
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/gosnmp/gosnmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/carverauto/printradar/pkg/logger"
)

const testOID = "1.3.6.1.2.1.25.3.2.1.3.1"

func TestClientQuery(t *testing.T) {
	tests := []struct {
		name   string
		value  string
		err    error
		expect string
	}{
		{name: "value", value: "HP LaserJet 400", expect: "HP LaserJet 400"},
		{name: "transport error", err: errors.New("request timeout"), expect: ""},
		{name: "no such object", err: ErrNoSuchObject, expect: ""},
		{name: "no such marker", value: "No Such Instance currently exists at this OID", expect: ""},
		{name: "blank", value: "   ", expect: ""},
		{name: "zero is a value", value: "0", expect: "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			transport := NewMockTransport(ctrl)

			transport.EXPECT().
				Get(gomock.Any(), "10.0.0.5", testOID, 2*time.Second).
				Return(tt.value, tt.err).
				Times(1)

			client := NewClient(transport, 2*time.Second, logger.NewTestLogger())
			assert.Equal(t, tt.expect, client.Query(context.Background(), "10.0.0.5", testOID))
		})
	}
}

func TestClientLookupReportsResponse(t *testing.T) {
	tests := []struct {
		name      string
		value     string
		err       error
		expect    string
		responded bool
	}{
		{name: "value", value: "HP LaserJet 400", expect: "HP LaserJet 400", responded: true},
		{name: "no such object", err: ErrNoSuchObject, responded: true},
		{name: "wrapped no such name", err: fmt.Errorf("get %s: %w: NoSuchName", testOID, ErrNoSuchObject), responded: true},
		{name: "no variables", err: ErrNoVariables, responded: true},
		{name: "no such marker", value: "No Such Object available on this agent at this OID", responded: true},
		{name: "timeout", err: context.DeadlineExceeded, responded: false},
		{name: "connect failure", err: errors.New("connect 10.0.0.5: network unreachable"), responded: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			transport := NewMockTransport(ctrl)

			transport.EXPECT().
				Get(gomock.Any(), "10.0.0.5", testOID, time.Second).
				Return(tt.value, tt.err)

			client := NewClient(transport, time.Second, logger.NewTestLogger())

			value, responded := client.Lookup(context.Background(), "10.0.0.5", testOID)
			assert.Equal(t, tt.expect, value)
			assert.Equal(t, tt.responded, responded)
		})
	}
}

func TestClientQueryAppliesDeadline(t *testing.T) {
	ctrl := gomock.NewController(t)
	transport := NewMockTransport(ctrl)

	transport.EXPECT().
		Get(gomock.Any(), "10.0.0.9", testOID, 50*time.Millisecond).
		DoAndReturn(func(ctx context.Context, _, _ string, _ time.Duration) (string, error) {
			deadline, ok := ctx.Deadline()
			require.True(t, ok)
			assert.WithinDuration(t, time.Now().Add(50*time.Millisecond), deadline, 50*time.Millisecond)

			<-ctx.Done()

			return "", ctx.Err()
		})

	client := NewClient(transport, 50*time.Millisecond, logger.NewTestLogger())

	start := time.Now()
	assert.Empty(t, client.Query(context.Background(), "10.0.0.9", testOID))
	assert.Less(t, time.Since(start), time.Second)
}

func TestNewClientDefaultsTimeout(t *testing.T) {
	client := NewClient(nil, 0, logger.NewTestLogger())
	assert.Equal(t, DefaultTimeout, client.Timeout())
}

func TestNewGoSNMPTransport(t *testing.T) {
	tr, err := NewGoSNMPTransport(TransportConfig{})
	require.NoError(t, err)
	assert.Equal(t, "public", tr.community)
	assert.Equal(t, uint16(161), tr.port)
	assert.Equal(t, gosnmp.Version1, tr.version)

	tr, err = NewGoSNMPTransport(TransportConfig{Community: "printers", Port: 1161, Version: Version2c})
	require.NoError(t, err)
	assert.Equal(t, "printers", tr.community)
	assert.Equal(t, uint16(1161), tr.port)
	assert.Equal(t, gosnmp.Version2c, tr.version)

	_, err = NewGoSNMPTransport(TransportConfig{Version: "v3"})
	require.ErrorIs(t, err, ErrUnsupportedSNMPVersion)
}

func TestRenderValue(t *testing.T) {
	tests := []struct {
		name    string
		pdu     gosnmp.SnmpPDU
		want    string
		wantErr error
	}{
		{
			name: "octet string bytes",
			pdu:  gosnmp.SnmpPDU{Type: gosnmp.OctetString, Value: []byte("Black Toner Cartridge")},
			want: "Black Toner Cartridge",
		},
		{
			name: "integer",
			pdu:  gosnmp.SnmpPDU{Type: gosnmp.Integer, Value: -3},
			want: "-3",
		},
		{
			name: "counter32",
			pdu:  gosnmp.SnmpPDU{Type: gosnmp.Counter32, Value: uint(15342)},
			want: "15342",
		},
		{
			name: "counter64",
			pdu:  gosnmp.SnmpPDU{Type: gosnmp.Counter64, Value: uint64(18446744073709551615)},
			want: "18446744073709551615",
		},
		{
			name:    "no such instance",
			pdu:     gosnmp.SnmpPDU{Type: gosnmp.NoSuchInstance},
			wantErr: ErrNoSuchObject,
		},
		{
			name:    "end of mib",
			pdu:     gosnmp.SnmpPDU{Type: gosnmp.EndOfMibView},
			wantErr: ErrNoSuchObject,
		},
		{
			name:    "octet string with unexpected value",
			pdu:     gosnmp.SnmpPDU{Type: gosnmp.OctetString, Value: 42},
			wantErr: errUnexpectedValue,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := renderValue(tt.pdu)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
