/*
Package scheduling groups the concurrency primitives used by the sieves.

  - workerpool: fixed worker pool with a fork/join RunAll barrier
*/
package scheduling
