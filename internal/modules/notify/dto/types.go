package dto

type AlertInput struct {
	Title    string
	Subtitle string
	Sound    string
}

type BackendInfo struct {
	Configured string
	Resolved   string
	Sink       string
}

type PluginInfo struct {
	Name         string
	Version      string
	Enabled      bool
	Binary       string
	Capabilities []string
}

type DoctorResult struct {
	Name            string
	BinaryReachable bool
	ChecksumValid   bool
	LifecycleOK     bool
	Error           string
}

type DoctorReport struct {
	Backend      BackendInfo
	BackendReady bool
	BackendError string
	Plugins      []DoctorResult
}
