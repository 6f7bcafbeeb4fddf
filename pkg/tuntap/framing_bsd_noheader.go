//go:build freebsd || netbsd || dragonfly

package tuntap

// tun(4) only prefixes the address family here after TUNSIFHEAD, which is never issued.
const tunAddressFamilyHeader = false
