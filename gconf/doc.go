/*

Package gconf implements a configuration store intended to be used as a global,
in-database configuration.

Each package keeps a single configuration object stored under the "_c:"
prefix followed by the package name. Configuration can be loaded from the
genesis file with InitConfig and changed later by root with an update
message processed by UpdateConfigurationHandler.

*/
package gconf
