/*

Package gconf implements a configuration store intended to be used as a global,
in-database configuration.

Each extension keeps its configuration as a singleton, stored under a
"_c:<package>" key. Configurations are loaded from the genesis during the
chain initialization and validated before every write.

*/
package gconf
