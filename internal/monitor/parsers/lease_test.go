package parsers

import (
	"testing"
	"time"

	"github.com/rileyhilliard/netuse/internal/monitor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const leaseDB = `# The format of this file is documented in the dhcpd.leases(5) manual page.
# This lease file was written by isc-dhcp-4.4.3

authoring-byte-order little-endian;

lease 192.168.1.20 {
  starts 3 2024/01/03 10:00:00;
  ends 3 2024/01/03 22:00:00;
  cltt 3 2024/01/03 10:00:00;
  binding state active;
  next binding state free;
  rewind binding state free;
  hardware ethernet aa:bb:cc:dd:ee:ff;
  uid "\001\252\273\314\335\356\377";
  client-hostname "laptop";
}
lease 192.168.1.21 {
  starts 3 2024/01/03 11:00:00;
  ends never;
  hardware ethernet 11:22:33:44:55:66;
}
server-duid "\000\001\000\001*\\\000\014)\245\012";

lease 192.168.1.20 {
  starts 3 2024/01/03 12:00:00;
  ends 4 2024/01/04 00:00:00;
  hardware ethernet aa:bb:cc:dd:ee:ff;
  client-hostname "laptop-renewed";
}
`

func TestParseLeaseFile(t *testing.T) {
	records, err := ParseLeaseFile(leaseDB)
	require.NoError(t, err)
	require.Len(t, records, 2)

	first := records[0]
	assert.Equal(t, "192.168.1.20", first.Address)
	assert.Equal(t, "aa:bb:cc:dd:ee:ff", first.Hardware)
	assert.Equal(t, "laptop-renewed", first.Hostname, "later block for the same address wins")
	assert.Equal(t, "2024/01/04 00:00:00", first.Expire)
	assert.Equal(t, time.Date(2024, 1, 4, 0, 0, 0, 0, time.UTC), first.Ends)
	assert.Equal(t, monitor.LeaseInactive, first.State)

	second := records[1]
	assert.Equal(t, "192.168.1.21", second.Address)
	assert.Equal(t, "11:22:33:44:55:66", second.Hardware)
	assert.Empty(t, second.Hostname)
	assert.Equal(t, "never", second.Expire)
	assert.True(t, second.Ends.IsZero())
}

func TestParseLeaseFile_Blocks(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []monitor.LeaseRecord
	}{
		{
			name:  "brace must be on first line",
			input: "lease 10.0.0.1\n{\n  hardware ethernet aa:aa:aa:aa:aa:aa;\n}\n",
			want:  nil,
		},
		{
			name:  "missing hardware statement",
			input: "lease 10.0.0.2 {\n  client-hostname \"printer\";\n}\n",
			want: []monitor.LeaseRecord{
				{Address: "10.0.0.2", Hostname: "printer"},
			},
		},
		{
			name:  "statement without terminator is dropped",
			input: "lease 10.0.0.3 {\n  hardware ethernet bb:bb:bb:bb:bb:bb\n}\n",
			want: []monitor.LeaseRecord{
				{Address: "10.0.0.3"},
			},
		},
		{
			name:  "hostname with spaces",
			input: "lease 10.0.0.4 {\n  client-hostname \"Living Room TV\";\n}\n",
			want: []monitor.LeaseRecord{
				{Address: "10.0.0.4", Hostname: "Living Room TV"},
			},
		},
		{
			name:  "epoch time format",
			input: "lease 10.0.0.5 {\n  ends epoch 1704326400; # Thu Jan 04 00:00:00 2024\n  hardware ethernet cc:cc:cc:cc:cc:cc;\n}\n",
			want: []monitor.LeaseRecord{
				{
					Address:  "10.0.0.5",
					Hardware: "cc:cc:cc:cc:cc:cc",
					Expire:   "epoch 1704326400",
					Ends:     time.Unix(1704326400, 0).UTC(),
				},
			},
		},
		{
			name:  "short hardware statement ignored",
			input: "lease 10.0.0.6 {\n  hardware;\n  ends 4;\n}\n",
			want: []monitor.LeaseRecord{
				{Address: "10.0.0.6"},
			},
		},
		{
			name:  "unknown statements ignored",
			input: "lease 10.0.0.7 {\n  option agent.circuit-id \"x\";\n  set vendor-class-identifier = \"android\";\n}\n",
			want: []monitor.LeaseRecord{
				{Address: "10.0.0.7"},
			},
		},
		{
			name:  "no leases",
			input: "# empty\nauthoring-byte-order little-endian;\n",
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseLeaseFile(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseLeaseExpiry(t *testing.T) {
	tests := []struct {
		name   string
		expire string
		want   time.Time
		ok     bool
	}{
		{
			name:   "dhcpd date",
			expire: "2024/01/04 00:00:00",
			want:   time.Date(2024, 1, 4, 0, 0, 0, 0, time.UTC),
			ok:     true,
		},
		{
			name:   "epoch",
			expire: "epoch 1704326400",
			want:   time.Date(2024, 1, 4, 0, 0, 0, 0, time.UTC),
			ok:     true,
		},
		{name: "never", expire: "never"},
		{name: "empty", expire: ""},
		{name: "bad epoch", expire: "epoch soon"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseLeaseExpiry(tt.expire)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.True(t, tt.want.Equal(got), "got %s", got)
			}
		})
	}
}
