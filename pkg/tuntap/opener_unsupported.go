//go:build darwin

package tuntap

func openPlatform(req openRequest) (openResult, error) {
	return openResult{}, &Error{Op: "open", Path: req.name, Kind: KindOther, Err: ErrUnsupported}
}
