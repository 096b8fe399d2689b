package bootstrap

var TrayCallbacks = trayCallbacks
