package schema

import (
	"fmt"
	"strings"
)

type VMSize string

const (
	VMSharedCPU1x    VMSize = "shared-cpu-1x"
	VMDedicatedCPU1x VMSize = "dedicated-cpu-1x"
	VMDedicatedCPU2x VMSize = "dedicated-cpu-2x"
	VMDedicatedCPU4x VMSize = "dedicated-cpu-4x"
	VMDedicatedCPU8x VMSize = "dedicated-cpu-8x"
)

func (v *VMSize) UnmarshalText(text []byte) error {
	switch s := VMSize(strings.ToLower(string(text))); s {
	case VMSharedCPU1x, VMDedicatedCPU1x, VMDedicatedCPU2x, VMDedicatedCPU4x, VMDedicatedCPU8x:
		*v = s
		return nil
	}
	return fmt.Errorf("unknown vm size %q", text)
}

type BalanceMethod string

const (
	BalanceBalanced BalanceMethod = "balanced"
	BalanceStandard BalanceMethod = "standard"
	BalanceStatic   BalanceMethod = "static"
)

func (b *BalanceMethod) UnmarshalText(text []byte) error {
	switch s := BalanceMethod(strings.ToLower(string(text))); s {
	case BalanceBalanced, BalanceStandard, BalanceStatic:
		*b = s
		return nil
	}
	return fmt.Errorf("unknown balance method %q", text)
}

// KillSignal accepts both "sigInt" and "SIGINT" spellings and is always
// written upper case.
type KillSignal string

const (
	SigInt  KillSignal = "SIGINT"
	SigTerm KillSignal = "SIGTERM"
	SigQuit KillSignal = "SIGQUIT"
	SigUsr1 KillSignal = "SIGUSR1"
	SigUsr2 KillSignal = "SIGUSR2"
	SigKill KillSignal = "SIGKILL"
	SigStop KillSignal = "SIGSTOP"
)

func (k *KillSignal) UnmarshalText(text []byte) error {
	switch s := KillSignal(strings.ToUpper(string(text))); s {
	case SigInt, SigTerm, SigQuit, SigUsr1, SigUsr2, SigKill, SigStop:
		*k = s
		return nil
	}
	return fmt.Errorf("unknown kill signal %q", text)
}

type DeployStrategy string

const (
	StrategyCanary    DeployStrategy = "canary"
	StrategyRolling   DeployStrategy = "rolling"
	StrategyBluegreen DeployStrategy = "bluegreen"
	StrategyImmediate DeployStrategy = "immediate"
)

func (d *DeployStrategy) UnmarshalText(text []byte) error {
	switch s := DeployStrategy(strings.ToLower(string(text))); s {
	case StrategyCanary, StrategyRolling, StrategyBluegreen, StrategyImmediate:
		*d = s
		return nil
	}
	return fmt.Errorf("unknown deploy strategy %q", text)
}

type PortHandler string

const (
	HandlerHTTP PortHandler = "http"
	HandlerTLS  PortHandler = "tls"
)

func (h *PortHandler) UnmarshalText(text []byte) error {
	switch s := PortHandler(strings.ToLower(string(text))); s {
	case HandlerHTTP, HandlerTLS:
		*h = s
		return nil
	}
	return fmt.Errorf("unknown port handler %q", text)
}

type CheckProtocol string

const (
	CheckHTTP  CheckProtocol = "http"
	CheckHTTPS CheckProtocol = "https"
)

func (c *CheckProtocol) UnmarshalText(text []byte) error {
	switch s := CheckProtocol(strings.ToLower(string(text))); s {
	case CheckHTTP, CheckHTTPS:
		*c = s
		return nil
	}
	return fmt.Errorf("unknown check protocol %q", text)
}

type ServiceProtocol string

const (
	ProtocolTCP ServiceProtocol = "tcp"
	ProtocolUDP ServiceProtocol = "udp"
)

func (p *ServiceProtocol) UnmarshalText(text []byte) error {
	switch s := ServiceProtocol(strings.ToLower(string(text))); s {
	case ProtocolTCP, ProtocolUDP:
		*p = s
		return nil
	}
	return fmt.Errorf("unknown service protocol %q", text)
}
