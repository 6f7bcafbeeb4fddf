// Package tuntap creates TUN (raw IP) and TAP (raw Ethernet) interfaces and
// exposes each one as a Device that is read and written like a file.
//
// On Linux the clone device /dev/net/tun is bound with TUNSETIFF; on
// FreeBSD, NetBSD, OpenBSD and DragonFly the /dev/tunN or /dev/tapN node is
// opened directly. What precedes each packet on the wire depends on the
// platform and on PacketInfo; see Framing.
//
// Reads always return the unit as the OS delivered it, prefix included.
// Writes are passed through unchanged, so on OpenBSD TUN devices the caller
// supplies the 4-byte address family itself, either by hand with Writev or
// through WriteFrame.
package tuntap
