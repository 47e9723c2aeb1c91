package shell

import "testing"

func TestDetect(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		goos string
		env  map[string]string
		want Shell
	}{
		{name: "zsh", goos: "darwin", env: map[string]string{"SHELL": "/bin/zsh"}, want: Zsh},
		{name: "bash", goos: "linux", env: map[string]string{"SHELL": "/usr/bin/bash"}, want: Bash},
		{name: "fish", goos: "linux", env: map[string]string{"SHELL": "/usr/local/bin/fish"}, want: Fish},
		{name: "csh", goos: "freebsd", env: map[string]string{"SHELL": "/bin/csh"}, want: Csh},
		{name: "tcsh matches csh", goos: "freebsd", env: map[string]string{"SHELL": "/bin/tcsh"}, want: Csh},
		{name: "no shell var", goos: "linux", env: map[string]string{}, want: Bash},
		{name: "unknown shell", goos: "linux", env: map[string]string{"SHELL": "/bin/nushell"}, want: Bash},
		{name: "windows powershell", goos: "windows", env: map[string]string{"PSModulePath": `C:\Modules`}, want: PowerShell},
		{name: "windows cmd", goos: "windows", env: map[string]string{}, want: Cmd},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			getenv := func(key string) string { return tc.env[key] }
			if got := detect(tc.goos, getenv); got != tc.want {
				t.Fatalf("detect(%q) = %q, expected %q", tc.goos, got, tc.want)
			}
		})
	}
}

func TestParse(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   string
		want Shell
	}{
		{"bash", Bash},
		{"ZSH", Zsh},
		{"fish", Fish},
		{"csh", Csh},
		{"tcsh", Csh},
		{"powershell", PowerShell},
		{"pwsh", PowerShell},
		{"cmd", Cmd},
		{"  bash  ", Bash},
	}

	for _, tc := range cases {
		got, err := Parse(tc.in)
		if err != nil {
			t.Fatalf("Parse(%q): %v", tc.in, err)
		}
		if got != tc.want {
			t.Fatalf("Parse(%q) = %q, expected %q", tc.in, got, tc.want)
		}
	}

	if _, err := Parse("ksh"); err == nil {
		t.Fatal("expected error for unsupported shell")
	}
}

func TestExportCommand(t *testing.T) {
	t.Parallel()

	cases := []struct {
		shell Shell
		want  string
	}{
		{Bash, `export AWS_PROFILE="dev-admin"`},
		{Zsh, `export AWS_PROFILE="dev-admin"`},
		{Fish, `set -gx AWS_PROFILE "dev-admin"`},
		{Csh, `setenv AWS_PROFILE "dev-admin"`},
		{PowerShell, `$env:AWS_PROFILE = "dev-admin"`},
		{Cmd, "set AWS_PROFILE=dev-admin"},
	}

	for _, tc := range cases {
		if got := tc.shell.ExportCommand("dev-admin"); got != tc.want {
			t.Fatalf("%s: expected %q, got %q", tc.shell, tc.want, got)
		}
	}
}

func TestUnsetCommand(t *testing.T) {
	t.Parallel()

	cases := []struct {
		shell Shell
		want  string
	}{
		{Bash, "unset AWS_PROFILE"},
		{Zsh, "unset AWS_PROFILE"},
		{Fish, "set -e AWS_PROFILE"},
		{Csh, "unsetenv AWS_PROFILE"},
		{PowerShell, "Remove-Item Env:AWS_PROFILE"},
		{Cmd, "set AWS_PROFILE="},
	}

	for _, tc := range cases {
		if got := tc.shell.UnsetCommand(); got != tc.want {
			t.Fatalf("%s: expected %q, got %q", tc.shell, tc.want, got)
		}
	}
}
