package conversation

import "testing"

func TestRecoverAgentID(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"canonical token", "spawned agent-a1b2c3 to handle it", "agent-a1b2c3"},
		{"labelled id", "Agent ID: xyz789", "agent-xyz789"},
		{"labelled with equals", "agent id = deadbeef", "agent-deadbeef"},
		{"embedded json", `{"status":"ok","agentId":"agent-77"}`, "agent-77"},
		{"json without prefix", `{"agentId":"q1w2"}`, "agent-q1w2"},
		{"no id present", "just some tool output", ""},
		{"empty text", "", ""},
		{"prefix alone", "the agent- marker with nothing after", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RecoverAgentID(tt.text); got != tt.want {
				t.Errorf("RecoverAgentID(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}

func TestRecoverAgentID_FirstMatchWins(t *testing.T) {
	text := "started agent-first then also agent-second"
	if got := RecoverAgentID(text); got != "agent-first" {
		t.Errorf("RecoverAgentID = %q, want agent-first", got)
	}
}
